package dto

// CreateBookRequest HTTP图书登记请求
// validator tag说明:
// - required: 必填字段
// - max: 长度上限校验
// - isbn: 自定义ISBN格式校验(在pkg/validator中注册)
type CreateBookRequest struct {
	Title  string `json:"title" binding:"required,max=200" example:"As aventuras"`
	Author string `json:"author" binding:"required,max=100" example:"Fulano"`
	ISBN   string `json:"isbn" binding:"required,isbn" example:"9787115428028"`
}

// UpdateBookRequest HTTP图书更新请求
// ISBN不可更新,只允许修改书名与作者
type UpdateBookRequest struct {
	Title  string `json:"title" binding:"required,max=200" example:"As aventuras"`
	Author string `json:"author" binding:"required,max=100" example:"Fulano"`
}

// BookResponse HTTP图书响应
// 用于单个图书详情返回,列表项复用同一结构
type BookResponse struct {
	ID        uint   `json:"id" example:"1"`
	Title     string `json:"title" example:"As aventuras"`
	Author    string `json:"author" example:"Fulano"`
	ISBN      string `json:"isbn" example:"9787115428028"`
	CreatedAt string `json:"created_at" example:"2024-01-15 10:30:00"`
	UpdatedAt string `json:"updated_at" example:"2024-01-15 10:30:00"`
}

// ListBooksRequest HTTP图书列表请求
// title/author/isbn为可选筛选条件,均做大小写不敏感的子串匹配
type ListBooksRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100" example:"20"`
	Title    string `form:"title" binding:"omitempty,max=200" example:"aventuras"`
	Author   string `form:"author" binding:"omitempty,max=100" example:"Fulano"`
	ISBN     string `form:"isbn" binding:"omitempty,max=20" example:"9787115"`
}

// ListBooksResponse HTTP图书列表响应
type ListBooksResponse struct {
	List       []BookResponse `json:"list"`
	Total      int64          `json:"total" example:"100"`
	Page       int            `json:"page" example:"1"`
	PageSize   int            `json:"page_size" example:"20"`
	TotalPages int            `json:"total_pages" example:"5"`
}
