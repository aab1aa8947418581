package mysql

import (
	"context"

	"gorm.io/gorm"
)

// txKey context中事务DB的键(非导出类型,避免与其他包冲突)
type txKey struct{}

// txFromContext 从context提取事务DB
func txFromContext(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return nil
}

// TxManager 事务管理器
// 设计说明:
// 1. 封装GORM的Transaction方法
// 2. 通过context传递事务DB(避免全局变量)
// 3. 实现loan.Transactor接口,domain层不依赖GORM
type TxManager struct {
	db *gorm.DB
}

// NewTxManager 创建事务管理器
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// Transaction 执行事务
// fn内的所有Repository操作都会在同一事务中执行:
// fn返回error时自动ROLLBACK,返回nil时自动COMMIT
//
// 使用示例(借阅创建):
//
//	err := txManager.Transaction(ctx, func(ctx context.Context) error {
//	    // 1. 锁定图书行
//	    if _, err := bookRepo.LockByID(ctx, bookID); err != nil {
//	        return err
//	    }
//	    // 2. 可用性检查
//	    exists, err := loanRepo.ExistsByBookAndNotReturned(ctx, bookID)
//	    if err != nil || exists {
//	        ...
//	    }
//	    // 3. 创建借阅(nil则提交,非nil则回滚)
//	    return loanRepo.Create(ctx, loan)
//	})
func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 将事务DB注入Context,Repository的getDB方法会提取它
		txCtx := context.WithValue(ctx, txKey{}, tx)
		return fn(txCtx)
	})
}
