package mysql

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/library/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.Database.DSN()

	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			// 配合MySQL的loc=Asia/Shanghai
			return time.Now()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 连接池配置
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Println("✓ 数据库连接成功")

	// 自动迁移表结构
	// 注意：AutoMigrate只会创建表、添加字段，生产环境应使用版本化的迁移脚本
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&BookModel{},
		&LoanModel{},
	)
}

// BookModel GORM图书模型
// 设计说明:
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain/book/entity.go是领域实体，不依赖GORM
// 3. Repository负责两者之间的转换
// 4. ISBN有唯一索引：并发登记时这是唯一性的最终防线
// 5. 物理删除:删除后ISBN可重新登记(唯一索引只约束在馆图书)
type BookModel struct {
	ID        uint      `gorm:"primaryKey"`
	Title     string    `gorm:"index:idx_search;size:200;not null;comment:书名"` // 搜索索引
	Author    string    `gorm:"index:idx_search;size:100;not null;comment:作者"` // 搜索索引
	ISBN      string    `gorm:"uniqueIndex;size:20;not null;comment:ISBN号"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// LoanModel GORM借阅模型
// 设计说明:
// 1. BookID+Returned复合索引优化可用性查询(existsByBookAndNotReturned)
// 2. Returned使用*bool:NULL与false都表示未归还
// 3. 借阅记录只增不删,不做软删除
type LoanModel struct {
	ID            uint       `gorm:"primaryKey"`
	BookID        uint       `gorm:"index:idx_book_returned;not null;comment:图书ID"`
	Book          *BookModel `gorm:"foreignKey:BookID"` // 关联图书(Preload)
	Customer      string     `gorm:"size:100;not null;comment:借阅人"`
	CustomerEmail string     `gorm:"size:100;comment:借阅人邮箱"`
	LoanDate      time.Time  `gorm:"not null;comment:借出日期"`
	Returned      *bool      `gorm:"index:idx_book_returned;comment:是否已归还(NULL/false=未还)"`
	CreatedAt     time.Time  `gorm:"comment:创建时间"`
	UpdatedAt     time.Time  `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (LoanModel) TableName() string {
	return "loans"
}
