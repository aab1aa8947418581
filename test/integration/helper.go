package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 集成测试辅助工具
// 针对一个已经运行的服务实例(默认localhost:8080)发起真实HTTP请求,
// 服务未启动时整组测试跳过,不污染单元测试结果

const (
	// BaseURL API基础URL
	BaseURL = "http://localhost:8080/api/v1"
	// PingURL 健康检查URL
	PingURL = "http://localhost:8080/ping"
	// Timeout HTTP请求超时时间
	Timeout = 10 * time.Second
)

// Response 统一响应结构
type Response struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// BookData 图书响应数据
type BookData struct {
	ID     uint   `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	ISBN   string `json:"isbn"`
}

// BookListData 图书列表响应数据
type BookListData struct {
	List       []BookData `json:"list"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int        `json:"total_pages"`
}

// LoanData 借阅响应数据
type LoanData struct {
	ID       uint   `json:"id"`
	BookID   uint   `json:"book_id"`
	ISBN     string `json:"isbn"`
	Title    string `json:"title"`
	Customer string `json:"customer"`
	LoanDate string `json:"loan_date"`
	Returned *bool  `json:"returned"`
}

// LoanListData 借阅列表响应数据
type LoanListData struct {
	List     []LoanData `json:"list"`
	Total    int64      `json:"total"`
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
}

// RequireServer 检查服务是否在运行,未运行时跳过当前测试
func RequireServer(t *testing.T) {
	t.Helper()
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(PingURL)
	if err != nil {
		t.Skipf("服务未运行(%s),跳过集成测试: %v", PingURL, err)
	}
	resp.Body.Close()
}

// DoJSON 发送JSON请求并解析统一响应,同时返回HTTP状态码
func DoJSON(t *testing.T, method, url string, data interface{}) (int, *Response) {
	t.Helper()

	var body io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		require.NoError(t, err, "JSON序列化失败")
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err, "创建HTTP请求失败")
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	// 204等无响应体的情况
	if len(respBody) == 0 {
		return resp.StatusCode, &Response{}
	}

	var result Response
	err = json.Unmarshal(respBody, &result)
	require.NoError(t, err, "解析JSON响应失败: %s", string(respBody))

	return resp.StatusCode, &result
}

// GenerateTestISBN 生成唯一的测试ISBN
// 使用时间戳的后10位确保重复运行时不冲突
func GenerateTestISBN() string {
	timestamp := time.Now().UnixNano()
	return fmt.Sprintf("978%010d", timestamp%10000000000)
}

// CreateTestBook 登记测试图书并返回图书数据
func CreateTestBook(t *testing.T, title string) BookData {
	t.Helper()

	status, resp := DoJSON(t, "POST", BaseURL+"/books", map[string]string{
		"title":  title,
		"author": "测试作者",
		"isbn":   GenerateTestISBN(),
	})
	require.Equal(t, http.StatusCreated, status, "登记测试图书失败: %s", resp.Message)

	var data BookData
	require.NoError(t, json.Unmarshal(resp.Data, &data), "解析图书响应失败")
	return data
}
