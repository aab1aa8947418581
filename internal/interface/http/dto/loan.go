package dto

// CreateLoanRequest HTTP借书请求
// 借书按图书ISBN定位,不直接传图书ID
type CreateLoanRequest struct {
	ISBN          string `json:"isbn" binding:"required,isbn" example:"9787115428028"`
	Customer      string `json:"customer" binding:"required,max=100" example:"Fulano"`
	CustomerEmail string `json:"customer_email" binding:"omitempty,email,max=200" example:"fulano@example.com"`
}

// ReturnLoanRequest HTTP还书请求
// Returned用指针类型区分"未传"与"传了false":
// 未传时binding的required校验失败,避免把零值误当成还书标记
type ReturnLoanRequest struct {
	Returned *bool `json:"returned" binding:"required" example:"true"`
}

// LoanResponse HTTP借阅响应
type LoanResponse struct {
	ID            uint   `json:"id" example:"1"`
	BookID        uint   `json:"book_id" example:"1"`
	ISBN          string `json:"isbn,omitempty" example:"9787115428028"`
	Title         string `json:"title,omitempty" example:"As aventuras"`
	Customer      string `json:"customer" example:"Fulano"`
	CustomerEmail string `json:"customer_email,omitempty" example:"fulano@example.com"`
	LoanDate      string `json:"loan_date" example:"2024-01-15"`
	Returned      *bool  `json:"returned" example:"false"`
}

// ListLoansRequest HTTP借阅列表请求
// customer做子串匹配,isbn做精确匹配(关联图书表)
type ListLoansRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100" example:"20"`
	Customer string `form:"customer" binding:"omitempty,max=100" example:"Fulano"`
	ISBN     string `form:"isbn" binding:"omitempty,max=20" example:"9787115428028"`
}

// ListLoansResponse HTTP借阅列表响应
type ListLoansResponse struct {
	List       []LoanResponse `json:"list"`
	Total      int64          `json:"total" example:"100"`
	Page       int            `json:"page" example:"1"`
	PageSize   int            `json:"page_size" example:"20"`
	TotalPages int            `json:"total_pages" example:"5"`
}
