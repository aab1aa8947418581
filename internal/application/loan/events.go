package loan

import (
	"log"
	"time"
)

// 借阅领域事件路由键
// 下游系统(通知、逾期提醒、报表)按路由键绑定队列消费
const (
	RoutingKeyLoanCreated  = "loan.created"
	RoutingKeyLoanReturned = "loan.returned"
)

// EventPublisher 事件发布接口
// pkg/mq.Publisher实现;MQ未启用时注入nil,发布静默跳过
type EventPublisher interface {
	Publish(routingKey string, message interface{}) error
}

// LoanCreatedEvent 借阅创建事件
type LoanCreatedEvent struct {
	LoanID        uint      `json:"loan_id"`
	BookID        uint      `json:"book_id"`
	ISBN          string    `json:"isbn"`
	Customer      string    `json:"customer"`
	CustomerEmail string    `json:"customer_email,omitempty"`
	LoanDate      time.Time `json:"loan_date"`
}

// LoanReturnedEvent 图书归还事件
type LoanReturnedEvent struct {
	LoanID   uint `json:"loan_id"`
	BookID   uint `json:"book_id"`
	Returned bool `json:"returned"`
}

// publishEvent 发布事件(尽力而为)
// 发布失败只记录日志,不影响主流程:借阅/归还已提交,事件丢失可容忍
func publishEvent(publisher EventPublisher, routingKey string, event interface{}) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(routingKey, event); err != nil {
		log.Printf("[WARN] 发布事件失败: key=%s err=%v", routingKey, err)
	}
}
