package loan

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/xiebiao/library/internal/domain/book"
)

// fakeBookRepository 内存版图书仓储,只实现借阅服务用到的方法
type fakeBookRepository struct {
	books map[uint]*book.Book
}

func newFakeBookRepository(books ...*book.Book) *fakeBookRepository {
	r := &fakeBookRepository{books: make(map[uint]*book.Book)}
	for _, b := range books {
		r.books[b.ID] = b
	}
	return r
}

func (r *fakeBookRepository) Create(ctx context.Context, b *book.Book) error {
	r.books[b.ID] = b
	return nil
}

func (r *fakeBookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	b, ok := r.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	return b, nil
}

func (r *fakeBookRepository) FindByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	for _, b := range r.books {
		if b.ISBN == isbn {
			return b, nil
		}
	}
	return nil, book.ErrBookNotFound
}

func (r *fakeBookRepository) ExistsByISBN(ctx context.Context, isbn string) (bool, error) {
	_, err := r.FindByISBN(ctx, isbn)
	if err == book.ErrBookNotFound {
		return false, nil
	}
	return err == nil, err
}

func (r *fakeBookRepository) Update(ctx context.Context, b *book.Book) error {
	r.books[b.ID] = b
	return nil
}

func (r *fakeBookRepository) Delete(ctx context.Context, id uint) error {
	delete(r.books, id)
	return nil
}

func (r *fakeBookRepository) List(ctx context.Context, params book.FindParams) ([]*book.Book, int64, error) {
	return nil, 0, nil
}

func (r *fakeBookRepository) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	// 内存实现没有行锁,单线程测试中等价于FindByID
	return r.FindByID(ctx, id)
}

// fakeLoanRepository 内存版借阅仓储
type fakeLoanRepository struct {
	loans  map[uint]*Loan
	books  *fakeBookRepository
	nextID uint
}

func newFakeLoanRepository(books *fakeBookRepository) *fakeLoanRepository {
	return &fakeLoanRepository{
		loans:  make(map[uint]*Loan),
		books:  books,
		nextID: 1,
	}
}

func (r *fakeLoanRepository) Create(ctx context.Context, l *Loan) error {
	l.ID = r.nextID
	r.nextID++
	stored := *l
	r.loans[l.ID] = &stored
	return nil
}

func (r *fakeLoanRepository) FindByID(ctx context.Context, id uint) (*Loan, error) {
	l, ok := r.loans[id]
	if !ok {
		return nil, ErrLoanNotFound
	}
	found := *l
	if b, err := r.books.FindByID(ctx, l.BookID); err == nil {
		found.Book = b
	}
	return &found, nil
}

func (r *fakeLoanRepository) ExistsByBookAndNotReturned(ctx context.Context, bookID uint) (bool, error) {
	for _, l := range r.loans {
		if l.BookID == bookID && l.Outstanding() {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeLoanRepository) Update(ctx context.Context, l *Loan) error {
	if _, ok := r.loans[l.ID]; !ok {
		return ErrLoanNotFound
	}
	stored := *l
	r.loans[l.ID] = &stored
	return nil
}

func (r *fakeLoanRepository) List(ctx context.Context, params FindParams) ([]*Loan, int64, error) {
	ids := make([]uint, 0, len(r.loans))
	for id := range r.loans {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	matched := make([]*Loan, 0)
	for _, id := range ids {
		l := r.loans[id]
		if params.Customer != "" &&
			!strings.Contains(strings.ToLower(l.Customer), strings.ToLower(params.Customer)) {
			continue
		}
		if params.ISBN != "" {
			b, err := r.books.FindByID(ctx, l.BookID)
			if err != nil || b.ISBN != params.ISBN {
				continue
			}
		}
		found := *l
		matched = append(matched, &found)
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

// fakeTransactor 直接执行fn,不提供真实事务语义
type fakeTransactor struct{}

func (fakeTransactor) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// newTestService 组装借阅服务及其依赖的测试替身
func newTestService(books ...*book.Book) (Service, *fakeLoanRepository) {
	bookRepo := newFakeBookRepository(books...)
	loanRepo := newFakeLoanRepository(bookRepo)
	return NewService(loanRepo, bookRepo, fakeTransactor{}), loanRepo
}

func testBook() *book.Book {
	b := book.NewBook("As aventuras", "Fulano", "12345678")
	b.ID = 1
	return b
}

// TestService_BorrowBook 测试借书
func TestService_BorrowBook(t *testing.T) {
	svc, _ := newTestService(testBook())
	ctx := context.Background()

	l, err := svc.BorrowBook(ctx, NewLoan(1, "Fulano", "fulano@example.com"))
	if err != nil {
		t.Fatalf("借书失败: %v", err)
	}
	if l.ID == 0 {
		t.Error("借书成功后应该回填自增ID")
	}
	if l.LoanDate.IsZero() {
		t.Error("借书成功后应该设置借出日期")
	}
	if !l.Outstanding() {
		t.Error("新借阅应该处于未归还状态")
	}
}

// TestService_BorrowBook_Validation 测试借书参数校验
func TestService_BorrowBook_Validation(t *testing.T) {
	svc, _ := newTestService(testBook())
	ctx := context.Background()

	if _, err := svc.BorrowBook(ctx, nil); err != ErrBookRequired {
		t.Errorf("nil借阅应该返回ErrBookRequired, 实际: %v", err)
	}
	if _, err := svc.BorrowBook(ctx, NewLoan(0, "Fulano", "")); err != ErrBookRequired {
		t.Errorf("BookID为0应该返回ErrBookRequired, 实际: %v", err)
	}
	if _, err := svc.BorrowBook(ctx, NewLoan(1, "", "")); err != ErrCustomerRequired {
		t.Errorf("借阅人为空应该返回ErrCustomerRequired, 实际: %v", err)
	}
}

// TestService_BorrowBook_BookNotFound 测试借不存在的图书
func TestService_BorrowBook_BookNotFound(t *testing.T) {
	svc, _ := newTestService() // 没有任何图书
	ctx := context.Background()

	_, err := svc.BorrowBook(ctx, NewLoan(99, "Fulano", ""))
	if err != book.ErrBookNotFound {
		t.Errorf("图书不存在应该返回ErrBookNotFound, 实际: %v", err)
	}
}

// TestService_BorrowBook_AlreadyLoaned 测试重复借阅被拒绝
func TestService_BorrowBook_AlreadyLoaned(t *testing.T) {
	svc, _ := newTestService(testBook())
	ctx := context.Background()

	if _, err := svc.BorrowBook(ctx, NewLoan(1, "Fulano", "")); err != nil {
		t.Fatalf("第一次借书应该成功: %v", err)
	}

	_, err := svc.BorrowBook(ctx, NewLoan(1, "Ciclano", ""))
	if err != ErrBookAlreadyLoaned {
		t.Errorf("未归还前再次借阅应该返回ErrBookAlreadyLoaned, 实际: %v", err)
	}
}

// TestService_BorrowReturnBorrow 测试完整生命周期:借书→还书→再借
func TestService_BorrowReturnBorrow(t *testing.T) {
	svc, _ := newTestService(testBook())
	ctx := context.Background()

	// 1. 借书
	l, err := svc.BorrowBook(ctx, NewLoan(1, "Fulano", ""))
	if err != nil {
		t.Fatalf("借书失败: %v", err)
	}

	// 2. 还书
	l.MarkReturned(true)
	if err := svc.UpdateLoan(ctx, l); err != nil {
		t.Fatalf("还书失败: %v", err)
	}

	returned, err := svc.GetLoanByID(ctx, l.ID)
	if err != nil {
		t.Fatalf("查询借阅记录失败: %v", err)
	}
	if returned.Outstanding() {
		t.Error("还书后借阅记录应该是已归还状态")
	}

	// 3. 同一本书可以再次借出,产生新的借阅记录
	l2, err := svc.BorrowBook(ctx, NewLoan(1, "Ciclano", ""))
	if err != nil {
		t.Fatalf("归还后再次借书应该成功: %v", err)
	}
	if l2.ID == l.ID {
		t.Error("再次借阅应该产生新的借阅记录")
	}
}

// TestService_UpdateLoan_Validation 测试更新参数校验
func TestService_UpdateLoan_Validation(t *testing.T) {
	svc, _ := newTestService(testBook())
	ctx := context.Background()

	if err := svc.UpdateLoan(ctx, nil); err != ErrLoanIDRequired {
		t.Errorf("nil借阅应该返回ErrLoanIDRequired, 实际: %v", err)
	}
	if err := svc.UpdateLoan(ctx, &Loan{}); err != ErrLoanIDRequired {
		t.Errorf("ID为0应该返回ErrLoanIDRequired, 实际: %v", err)
	}
}

// TestService_GetLoanByID_NotFound 测试查询不存在的借阅记录
func TestService_GetLoanByID_NotFound(t *testing.T) {
	svc, _ := newTestService(testBook())

	_, err := svc.GetLoanByID(context.Background(), 999)
	if err != ErrLoanNotFound {
		t.Errorf("查询不存在的借阅记录应该返回ErrLoanNotFound, 实际: %v", err)
	}
}

// TestService_ListLoans 测试借阅列表筛选
func TestService_ListLoans(t *testing.T) {
	b1 := testBook()
	b2 := book.NewBook("Go语言实战", "威廉", "22345678")
	b2.ID = 2
	svc, _ := newTestService(b1, b2)
	ctx := context.Background()

	if _, err := svc.BorrowBook(ctx, NewLoan(1, "Fulano", "")); err != nil {
		t.Fatalf("借书失败: %v", err)
	}
	if _, err := svc.BorrowBook(ctx, NewLoan(2, "Ciclano", "")); err != nil {
		t.Fatalf("借书失败: %v", err)
	}

	// 借阅人子串筛选(大小写不敏感)
	loans, total, err := svc.ListLoans(ctx, FindParams{Page: 1, PageSize: 20, Customer: "fulano"})
	if err != nil {
		t.Fatalf("列表查询失败: %v", err)
	}
	if total != 1 || loans[0].Customer != "Fulano" {
		t.Errorf("Customer筛选结果错误: total=%d", total)
	}

	// ISBN精确筛选(关联图书)
	loans, total, err = svc.ListLoans(ctx, FindParams{Page: 1, PageSize: 20, ISBN: "22345678"})
	if err != nil {
		t.Fatalf("列表查询失败: %v", err)
	}
	if total != 1 || loans[0].BookID != 2 {
		t.Errorf("ISBN筛选结果错误: total=%d", total)
	}

	// 无筛选返回全部
	_, total, err = svc.ListLoans(ctx, FindParams{Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("列表查询失败: %v", err)
	}
	if total != 2 {
		t.Errorf("无筛选应该返回全部2条, total=%d", total)
	}
}
