// Package validator 注册gin binding的自定义校验规则
//
// gin内部使用go-playground/validator作为校验引擎，
// 通过binding.Validator.Engine()可以拿到引擎并注册自定义规则。
// dto中即可使用 binding:"required,isbn" 这样的tag。
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	playground "github.com/go-playground/validator/v10"
)

var (
	nonDigit  = regexp.MustCompile(`[^0-9]`)
	separator = regexp.MustCompile(`[-\s]`)
)

// Register 注册所有自定义校验规则
// 必须在gin引擎处理请求前调用一次（main中初始化）
func Register() error {
	v, ok := binding.Validator.Engine().(*playground.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("isbn", validateISBN)
}

// validateISBN 校验ISBN格式
// 规则：去除分隔符(如978-7-115-42802-8)后必须全为数字，且不超过13位
// 说明：不校验校验位，历史馆藏存在8位编号，因此不限制最小位数
func validateISBN(fl playground.FieldLevel) bool {
	isbn := fl.Field().String()
	if isbn == "" {
		return false
	}

	clean := nonDigit.ReplaceAllString(isbn, "")
	if clean == "" || len(clean) > 13 {
		return false
	}

	// 去除分隔符后不允许残留其他字符
	stripped := separator.ReplaceAllString(isbn, "")
	return stripped == clean
}
