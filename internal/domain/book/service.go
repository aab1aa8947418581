package book

import (
	"context"
)

// Service 图书领域服务接口
// 设计说明:
// 1. 领域服务封装业务规则校验(ISBN唯一性等)
// 2. 不依赖具体的Repository实现(依赖倒置)
type Service interface {
	// CreateBook 登记图书
	// 业务规则:ISBN不能重复,否则返回ErrISBNDuplicate
	CreateBook(ctx context.Context, b *Book) (*Book, error)

	// GetBookByID 根据ID获取图书,不存在返回ErrBookNotFound
	GetBookByID(ctx context.Context, id uint) (*Book, error)

	// GetBookByISBN 根据ISBN精确获取图书
	GetBookByISBN(ctx context.Context, isbn string) (*Book, error)

	// UpdateBook 覆盖更新图书
	// 业务规则:b不能为nil且必须有ID;不重新校验ISBN唯一性(覆盖语义)
	UpdateBook(ctx context.Context, b *Book) error

	// DeleteBook 删除图书
	// 业务规则:b不能为nil且必须有ID
	// 删除不存在的ID由调用方负责先通过GetBookByID确认
	DeleteBook(ctx context.Context, b *Book) error

	// ListBooks 分页查询图书列表
	// 筛选语义见Filter:非空字段大小写不敏感子串匹配,AND组合
	// 排序为插入顺序(id升序)
	ListBooks(ctx context.Context, params FindParams) ([]*Book, int64, error)
}

// service 领域服务实现
type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// CreateBook 登记图书
func (s *service) CreateBook(ctx context.Context, b *Book) (*Book, error) {
	if b == nil {
		return nil, ErrBookRequired
	}

	// 1. 检查ISBN是否已登记
	// 预检查只为给出友好错误;并发下的最终防线是数据库唯一索引,
	// Repository会把唯一索引冲突同样映射为ErrISBNDuplicate
	exists, err := s.repo.ExistsByISBN(ctx, b.ISBN)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrISBNDuplicate
	}

	// 2. 持久化(回填自增ID)
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// GetBookByID 根据ID获取图书
func (s *service) GetBookByID(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

// GetBookByISBN 根据ISBN获取图书
func (s *service) GetBookByISBN(ctx context.Context, isbn string) (*Book, error) {
	return s.repo.FindByISBN(ctx, isbn)
}

// UpdateBook 覆盖更新图书
func (s *service) UpdateBook(ctx context.Context, b *Book) error {
	if b == nil || b.ID == 0 {
		return ErrBookIDRequired
	}

	return s.repo.Update(ctx, b)
}

// DeleteBook 删除图书
func (s *service) DeleteBook(ctx context.Context, b *Book) error {
	if b == nil || b.ID == 0 {
		return ErrBookIDRequired
	}

	return s.repo.Delete(ctx, b.ID)
}

// ListBooks 分页查询图书列表
func (s *service) ListBooks(ctx context.Context, params FindParams) ([]*Book, int64, error) {
	return s.repo.List(ctx, params)
}
