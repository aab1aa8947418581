package handler

import (
	"github.com/gin-gonic/gin"

	apploan "github.com/xiebiao/library/internal/application/loan"
	"github.com/xiebiao/library/internal/interface/http/dto"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/response"
)

// LoanHandler 借阅HTTP处理器
type LoanHandler struct {
	borrowBookUseCase *apploan.BorrowBookUseCase
	returnBookUseCase *apploan.ReturnBookUseCase
	getLoanUseCase    *apploan.GetLoanUseCase
	listLoansUseCase  *apploan.ListLoansUseCase
}

// NewLoanHandler 创建借阅处理器
func NewLoanHandler(
	borrowBookUseCase *apploan.BorrowBookUseCase,
	returnBookUseCase *apploan.ReturnBookUseCase,
	getLoanUseCase *apploan.GetLoanUseCase,
	listLoansUseCase *apploan.ListLoansUseCase,
) *LoanHandler {
	return &LoanHandler{
		borrowBookUseCase: borrowBookUseCase,
		returnBookUseCase: returnBookUseCase,
		getLoanUseCase:    getLoanUseCase,
		listLoansUseCase:  listLoansUseCase,
	}
}

// CreateLoan 借书
// @Summary      借书
// @Description  按ISBN借出一本图书,同一本书未归还前不能再次借出
// @Tags         借阅
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateLoanRequest true "借阅信息"
// @Success      201 {object} response.Response{data=dto.LoanResponse}
// @Failure      400 {object} response.Response "参数错误或ISBN对应图书不存在"
// @Failure      409 {object} response.Response "图书已被借出"
// @Router       /api/v1/loans [post]
func (h *LoanHandler) CreateLoan(c *gin.Context) {
	// 1. 参数绑定与验证
	var req dto.CreateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	// 2. 调用应用层用例
	result, err := h.borrowBookUseCase.Execute(c.Request.Context(), apploan.BorrowBookRequest{
		ISBN:          req.ISBN,
		Customer:      req.Customer,
		CustomerEmail: req.CustomerEmail,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	// 3. 构建HTTP响应(201 Created)
	response.Created(c, toLoanDTO(result))
}

// ReturnLoan 还书
// @Summary      还书
// @Description  标记借阅记录为已归还
// @Tags         借阅
// @Accept       json
// @Produce      json
// @Param        id path int true "借阅ID"
// @Param        request body dto.ReturnLoanRequest true "归还标记"
// @Success      200 {object} response.Response{data=dto.LoanResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "借阅记录不存在"
// @Router       /api/v1/loans/{id} [patch]
func (h *LoanHandler) ReturnLoan(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "无效的借阅ID")
		return
	}

	var req dto.ReturnLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.returnBookUseCase.Execute(c.Request.Context(), id, *req.Returned)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toLoanDTO(result))
}

// GetLoan 查询借阅详情
// @Summary      查询借阅详情
// @Tags         借阅
// @Produce      json
// @Param        id path int true "借阅ID"
// @Success      200 {object} response.Response{data=dto.LoanResponse}
// @Failure      404 {object} response.Response "借阅记录不存在"
// @Router       /api/v1/loans/{id} [get]
func (h *LoanHandler) GetLoan(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "无效的借阅ID")
		return
	}

	result, err := h.getLoanUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toLoanDTO(result))
}

// ListLoans 查询借阅列表
// @Summary      查询借阅列表
// @Description  分页查询,customer做子串筛选,isbn按关联图书精确筛选
// @Tags         借阅
// @Produce      json
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页数量" default(20)
// @Param        customer query string false "借阅人筛选(子串)"
// @Param        isbn query string false "图书ISBN筛选(精确)"
// @Success      200 {object} response.Response{data=dto.ListLoansResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /api/v1/loans [get]
func (h *LoanHandler) ListLoans(c *gin.Context) {
	var req dto.ListLoansRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.listLoansUseCase.Execute(c.Request.Context(), apploan.ListLoansRequest{
		Page:     req.Page,
		PageSize: req.PageSize,
		Customer: req.Customer,
		ISBN:     req.ISBN,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]dto.LoanResponse, len(result.List))
	for i := range result.List {
		list[i] = *toLoanDTO(&result.List[i])
	}
	response.Success(c, &dto.ListLoansResponse{
		List:       list,
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
	})
}

// toLoanDTO 应用层响应→HTTP响应转换
func toLoanDTO(r *apploan.LoanResponse) *dto.LoanResponse {
	return &dto.LoanResponse{
		ID:            r.ID,
		BookID:        r.BookID,
		ISBN:          r.ISBN,
		Title:         r.Title,
		Customer:      r.Customer,
		CustomerEmail: r.CustomerEmail,
		LoanDate:      r.LoanDate,
		Returned:      r.Returned,
	}
}
