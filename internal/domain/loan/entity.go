package loan

import (
	"time"

	"github.com/xiebiao/library/internal/domain/book"
)

// Loan 借阅记录实体(聚合根)
// 设计说明:
// 1. Loan只保存BookID引用,Book不反向引用Loan(避免跨聚合双向依赖)
// 2. Returned使用*bool:nil与false都表示未归还,true表示已归还
//    (历史数据中该列允许NULL,领域语义上两者等价,见Outstanding)
// 3. 借阅记录只增不删,归还通过置Returned=true完成
type Loan struct {
	ID            uint
	BookID        uint       // 借出的图书ID
	Book          *book.Book // 关联图书(查询时预加载,可能为nil)
	Customer      string     // 借阅人姓名
	CustomerEmail string     // 借阅人邮箱(用于归还/逾期通知)
	LoanDate      time.Time  // 借出日期(创建时设置)
	Returned      *bool      // 是否已归还(nil/false=未还 true=已还)
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewLoan 创建新借阅记录(工厂方法)
// LoanDate由领域服务在持久化前设置为当前时间
func NewLoan(bookID uint, customer, customerEmail string) *Loan {
	now := time.Now()
	return &Loan{
		BookID:        bookID,
		Customer:      customer,
		CustomerEmail: customerEmail,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Outstanding 是否仍在借(未归还)
func (l *Loan) Outstanding() bool {
	return l.Returned == nil || !*l.Returned
}

// MarkReturned 设置归还标记(领域行为)
// 只支持未还→已还;已还记录不会被"复活",再次借阅产生新的Loan
func (l *Loan) MarkReturned(returned bool) {
	l.Returned = &returned
	l.UpdatedAt = time.Now()
}
