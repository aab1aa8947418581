package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	appbook "github.com/xiebiao/library/internal/application/book"
	apploan "github.com/xiebiao/library/internal/application/loan"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/pkg/validator"
)

// 测试辅助:用内存版领域服务组装完整的HTTP栈,
// 覆盖"参数绑定→用例编排→错误码→HTTP状态码"整条链路

// fakeBookService 内存版图书服务
type fakeBookService struct {
	books  map[uint]*book.Book
	nextID uint
}

func newFakeBookService() *fakeBookService {
	return &fakeBookService{
		books:  make(map[uint]*book.Book),
		nextID: 1,
	}
}

func (s *fakeBookService) CreateBook(ctx context.Context, b *book.Book) (*book.Book, error) {
	for _, existing := range s.books {
		if existing.ISBN == b.ISBN {
			return nil, book.ErrISBNDuplicate
		}
	}
	b.ID = s.nextID
	s.nextID++
	s.books[b.ID] = b
	return b, nil
}

func (s *fakeBookService) GetBookByID(ctx context.Context, id uint) (*book.Book, error) {
	b, ok := s.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	return b, nil
}

func (s *fakeBookService) GetBookByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	for _, b := range s.books {
		if b.ISBN == isbn {
			return b, nil
		}
	}
	return nil, book.ErrBookNotFound
}

func (s *fakeBookService) UpdateBook(ctx context.Context, b *book.Book) error {
	if b == nil || b.ID == 0 {
		return book.ErrBookIDRequired
	}
	s.books[b.ID] = b
	return nil
}

func (s *fakeBookService) DeleteBook(ctx context.Context, b *book.Book) error {
	if b == nil || b.ID == 0 {
		return book.ErrBookIDRequired
	}
	delete(s.books, b.ID)
	return nil
}

func (s *fakeBookService) ListBooks(ctx context.Context, params book.FindParams) ([]*book.Book, int64, error) {
	ids := make([]uint, 0, len(s.books))
	for id := range s.books {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	matched := make([]*book.Book, 0)
	for _, id := range ids {
		b := s.books[id]
		if containsFold(b.Title, params.Filter.Title) &&
			containsFold(b.Author, params.Filter.Author) &&
			containsFold(b.ISBN, params.Filter.ISBN) {
			matched = append(matched, b)
		}
	}

	total := int64(len(matched))
	start := params.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + params.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

// containsFold 大小写不敏感子串匹配,筛选值为空视为命中
func containsFold(value, filter string) bool {
	if filter == "" {
		return true
	}
	return strings.Contains(strings.ToLower(value), strings.ToLower(filter))
}

// fakeLoanService 内存版借阅服务
type fakeLoanService struct {
	loans  map[uint]*loan.Loan
	books  *fakeBookService
	nextID uint
}

func newFakeLoanService(books *fakeBookService) *fakeLoanService {
	return &fakeLoanService{
		loans:  make(map[uint]*loan.Loan),
		books:  books,
		nextID: 1,
	}
}

func (s *fakeLoanService) BorrowBook(ctx context.Context, l *loan.Loan) (*loan.Loan, error) {
	if l == nil || l.BookID == 0 {
		return nil, loan.ErrBookRequired
	}
	if l.Customer == "" {
		return nil, loan.ErrCustomerRequired
	}
	for _, existing := range s.loans {
		if existing.BookID == l.BookID && existing.Outstanding() {
			return nil, loan.ErrBookAlreadyLoaned
		}
	}
	l.ID = s.nextID
	s.nextID++
	l.LoanDate = time.Now()
	s.loans[l.ID] = l
	return l, nil
}

func (s *fakeLoanService) GetLoanByID(ctx context.Context, id uint) (*loan.Loan, error) {
	l, ok := s.loans[id]
	if !ok {
		return nil, loan.ErrLoanNotFound
	}
	if b, err := s.books.GetBookByID(ctx, l.BookID); err == nil {
		l.Book = b
	}
	return l, nil
}

func (s *fakeLoanService) UpdateLoan(ctx context.Context, l *loan.Loan) error {
	if l == nil || l.ID == 0 {
		return loan.ErrLoanIDRequired
	}
	s.loans[l.ID] = l
	return nil
}

func (s *fakeLoanService) ListLoans(ctx context.Context, params loan.FindParams) ([]*loan.Loan, int64, error) {
	ids := make([]uint, 0, len(s.loans))
	for id := range s.loans {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	matched := make([]*loan.Loan, 0)
	for _, id := range ids {
		l := s.loans[id]
		if !containsFold(l.Customer, params.Customer) {
			continue
		}
		if params.ISBN != "" {
			b, err := s.books.GetBookByID(ctx, l.BookID)
			if err != nil || b.ISBN != params.ISBN {
				continue
			}
		}
		matched = append(matched, l)
	}

	total := int64(len(matched))
	start := params.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + params.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

// envelope 统一响应结构(测试侧解析用)
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// setupRouter 组装测试用HTTP栈,返回路由和两个内存服务
func setupRouter(t *testing.T) (*gin.Engine, *fakeBookService, *fakeLoanService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, validator.Register(), "注册校验规则失败")

	bookService := newFakeBookService()
	loanService := newFakeLoanService(bookService)

	bookHandler := NewBookHandler(
		appbook.NewCreateBookUseCase(bookService),
		appbook.NewGetBookUseCase(bookService),
		appbook.NewUpdateBookUseCase(bookService),
		appbook.NewDeleteBookUseCase(bookService),
		appbook.NewListBooksUseCase(bookService),
	)
	loanHandler := NewLoanHandler(
		apploan.NewBorrowBookUseCase(bookService, loanService, nil),
		apploan.NewReturnBookUseCase(loanService, nil),
		apploan.NewGetLoanUseCase(loanService),
		apploan.NewListLoansUseCase(loanService),
	)

	r := gin.New()
	v1 := r.Group("/api/v1")
	{
		books := v1.Group("/books")
		{
			books.POST("", bookHandler.CreateBook)
			books.GET("", bookHandler.ListBooks)
			books.GET("/:id", bookHandler.GetBook)
			books.PUT("/:id", bookHandler.UpdateBook)
			books.DELETE("/:id", bookHandler.DeleteBook)
		}
		loans := v1.Group("/loans")
		{
			loans.POST("", loanHandler.CreateLoan)
			loans.GET("", loanHandler.ListLoans)
			loans.GET("/:id", loanHandler.GetLoan)
			loans.PATCH("/:id", loanHandler.ReturnLoan)
		}
	}
	return r, bookService, loanService
}

// doJSON 发送JSON请求并解析统一响应
func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) (int, *envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err, "JSON序列化失败")
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	// 204等无响应体的情况直接返回
	if w.Body.Len() == 0 {
		return w.Code, &envelope{}
	}

	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "解析响应失败: %s", w.Body.String())
	return w.Code, &resp
}
