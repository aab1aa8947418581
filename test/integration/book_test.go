package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 图书模块集成测试
//
// 测试场景覆盖:
// 1. 图书登记(ISBN唯一性)
// 2. 详情/更新/删除
// 3. 列表分页与筛选

// TestBookCRUD 测试图书增删改查
func TestBookCRUD(t *testing.T) {
	RequireServer(t)

	t.Run("正常登记", func(t *testing.T) {
		isbn := GenerateTestISBN()
		status, resp := DoJSON(t, "POST", BaseURL+"/books", map[string]string{
			"title":  "《Go语言高级编程》",
			"author": "柴树杉",
			"isbn":   isbn,
		})

		assert.Equal(t, http.StatusCreated, status, "登记应该返回201")
		assert.Equal(t, 0, resp.Code)

		var data BookData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.NotZero(t, data.ID, "图书ID应该大于0")
		assert.Equal(t, isbn, data.ISBN)

		t.Logf("✓ 登记成功, 图书ID: %d, ISBN: %s", data.ID, data.ISBN)
	})

	t.Run("重复ISBN应失败", func(t *testing.T) {
		isbn := GenerateTestISBN()

		status1, resp1 := DoJSON(t, "POST", BaseURL+"/books", map[string]string{
			"title":  "《图书A》",
			"author": "作者A",
			"isbn":   isbn,
		})
		require.Equal(t, http.StatusCreated, status1, "第一次登记应该成功: %s", resp1.Message)

		status2, resp2 := DoJSON(t, "POST", BaseURL+"/books", map[string]string{
			"title":  "《图书B》",
			"author": "作者B",
			"isbn":   isbn, // 相同ISBN
		})
		assert.Equal(t, http.StatusConflict, status2, "重复ISBN应该返回409")
		assert.Contains(t, resp2.Message, "ISBN")

		t.Logf("✓ 重复ISBN正确返回错误: %s", resp2.Message)
	})

	t.Run("查询详情与404", func(t *testing.T) {
		book := CreateTestBook(t, "《详情测试》")

		status, resp := DoJSON(t, "GET", fmt.Sprintf("%s/books/%d", BaseURL, book.ID), nil)
		assert.Equal(t, http.StatusOK, status)

		var data BookData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.Equal(t, book.ID, data.ID)
		assert.Equal(t, "《详情测试》", data.Title)

		status, _ = DoJSON(t, "GET", BaseURL+"/books/99999999", nil)
		assert.Equal(t, http.StatusNotFound, status, "不存在的图书应该返回404")
	})

	t.Run("更新图书", func(t *testing.T) {
		book := CreateTestBook(t, "《旧书名》")

		status, resp := DoJSON(t, "PUT", fmt.Sprintf("%s/books/%d", BaseURL, book.ID), map[string]string{
			"title":  "《新书名》",
			"author": "新作者",
		})
		assert.Equal(t, http.StatusOK, status)

		var data BookData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.Equal(t, "《新书名》", data.Title)
		assert.Equal(t, "新作者", data.Author)
		assert.Equal(t, book.ISBN, data.ISBN, "更新不应该修改ISBN")
	})

	t.Run("删除图书", func(t *testing.T) {
		book := CreateTestBook(t, "《待删除》")

		status, _ := DoJSON(t, "DELETE", fmt.Sprintf("%s/books/%d", BaseURL, book.ID), nil)
		assert.Equal(t, http.StatusNoContent, status, "删除成功应该返回204")

		status, _ = DoJSON(t, "GET", fmt.Sprintf("%s/books/%d", BaseURL, book.ID), nil)
		assert.Equal(t, http.StatusNotFound, status, "删除后查询应该返回404")
	})

	t.Run("删除后ISBN可重新登记", func(t *testing.T) {
		book := CreateTestBook(t, "《旧版》")

		status, _ := DoJSON(t, "DELETE", fmt.Sprintf("%s/books/%d", BaseURL, book.ID), nil)
		require.Equal(t, http.StatusNoContent, status)

		// 同一ISBN重新登记不应该冲突
		status, resp := DoJSON(t, "POST", BaseURL+"/books", map[string]string{
			"title":  "《再版》",
			"author": "作者",
			"isbn":   book.ISBN,
		})
		require.Equal(t, http.StatusCreated, status, "删除后的ISBN应该可以重新登记")

		var data BookData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.NotEqual(t, book.ID, data.ID, "重新登记应该生成新的图书ID")
		assert.Equal(t, book.ISBN, data.ISBN)
	})

	t.Run("参数验证", func(t *testing.T) {
		// 缺少必填字段
		status, _ := DoJSON(t, "POST", BaseURL+"/books", map[string]string{
			"author": "作者",
			"isbn":   GenerateTestISBN(),
		})
		assert.Equal(t, http.StatusBadRequest, status, "缺少title应该返回400")

		// ISBN含字母
		status, _ = DoJSON(t, "POST", BaseURL+"/books", map[string]string{
			"title":  "《测试》",
			"author": "作者",
			"isbn":   "abc123def",
		})
		assert.Equal(t, http.StatusBadRequest, status, "非法ISBN应该返回400")
	})
}

// TestBookList 测试图书列表查询
func TestBookList(t *testing.T) {
	RequireServer(t)

	// 准备带独特书名前缀的测试数据,避免与其他测试数据混淆
	// ASCII前缀,避免URL查询参数转义问题
	prefix := "ListaTest" + GenerateTestISBN()
	for i := 0; i < 3; i++ {
		CreateTestBook(t, fmt.Sprintf("《%s-%d》", prefix, i))
	}

	t.Run("默认分页", func(t *testing.T) {
		status, resp := DoJSON(t, "GET", BaseURL+"/books", nil)
		assert.Equal(t, http.StatusOK, status)

		var data BookListData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.Equal(t, 1, data.Page, "默认第1页")
		assert.Equal(t, 20, data.PageSize, "默认每页20条")
		assert.GreaterOrEqual(t, data.Total, int64(3))
	})

	t.Run("书名子串筛选", func(t *testing.T) {
		status, resp := DoJSON(t, "GET", BaseURL+"/books?title="+prefix, nil)
		assert.Equal(t, http.StatusOK, status)

		var data BookListData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.Equal(t, int64(3), data.Total, "应该只命中测试数据")

		t.Logf("✓ 书名筛选命中%d条", data.Total)
	})

	t.Run("分页参数", func(t *testing.T) {
		status, resp := DoJSON(t, "GET",
			fmt.Sprintf("%s/books?title=%s&page=2&page_size=2", BaseURL, prefix), nil)
		assert.Equal(t, http.StatusOK, status)

		var data BookListData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.Equal(t, int64(3), data.Total)
		assert.Len(t, data.List, 1, "第2页(每页2条)应该剩1条")
		assert.Equal(t, 2, data.TotalPages)
	})

	t.Run("每页数量超限应失败", func(t *testing.T) {
		status, _ := DoJSON(t, "GET", BaseURL+"/books?page_size=101", nil)
		assert.Equal(t, http.StatusBadRequest, status, "page_size超过100应该返回400")
	})
}
