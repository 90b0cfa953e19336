package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 集成测试针对一个已启动的 `library serve` 实例运行
// 设置LIBRARY_TEST_BASE_URL(如 http://localhost:8080)后才会执行,否则跳过

const (
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
	ID        int     `json:"id"`
	Title     string  `json:"title"`
	Author    string  `json:"author"`
	Genre     string  `json:"genre"`
	Rating    float64 `json:"rating"`
	Quantity  int     `json:"quantity"`
	Available bool    `json:"available"`
}

// BookListData 图书列表响应数据
type BookListData struct {
	List  []BookData `json:"list"`
	Total int        `json:"total"`
}

// StudentData 学生响应数据
type StudentData struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Borrowed []int  `json:"borrowed"`
}

// BaseURL 返回API前缀,未配置时跳过当前测试
func BaseURL(t *testing.T) string {
	t.Helper()
	base := os.Getenv("LIBRARY_TEST_BASE_URL")
	if base == "" {
		t.Skip("未设置LIBRARY_TEST_BASE_URL,跳过集成测试")
	}
	return base + "/api/v1"
}

// PostJSON 发送POST请求并解析JSON响应
func PostJSON(t *testing.T, url string, data interface{}) *Response {
	t.Helper()
	jsonData, err := json.Marshal(data)
	require.NoError(t, err, "JSON序列化失败")

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(jsonData))
	require.NoError(t, err, "创建HTTP请求失败")
	req.Header.Set("Content-Type", "application/json")

	return do(t, req)
}

// GetJSON 发送GET请求并解析JSON响应
func GetJSON(t *testing.T, url string) *Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err, "创建HTTP请求失败")

	return do(t, req)
}

func do(t *testing.T, req *http.Request) *Response {
	t.Helper()
	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	var result Response
	require.NoError(t, json.Unmarshal(body, &result), "解析JSON响应失败: %s", string(body))
	return &result
}

// Decode 解析Data字段
func Decode[T any](t *testing.T, resp *Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(resp.Data, &v), "解析响应数据失败")
	return v
}

var idSeq atomic.Int64

// UniqueID 生成本次运行唯一的编号
// 服务端状态在多次运行之间保留,用时间戳避免与上次运行的数据冲突
func UniqueID() int {
	return int(time.Now().Unix()%1_000_000)*1000 + int(idSeq.Add(1)%1000)
}

// UniqueGenre 生成唯一的类型名,保证推荐图中只有本次测试的图书
func UniqueGenre(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, UniqueID())
}

// AddTestBook 上架测试图书
func AddTestBook(t *testing.T, base string, id int, title, genre string, quantity int) {
	t.Helper()
	resp := PostJSON(t, base+"/books", map[string]interface{}{
		"id":       id,
		"title":    title,
		"author":   "Test Author",
		"genre":    genre,
		"rating":   4.0,
		"quantity": quantity,
	})
	require.Equal(t, 0, resp.Code, "图书上架失败: %s", resp.Message)
}

// RegisterTestStudent 注册测试学生
func RegisterTestStudent(t *testing.T, base string, id int, name string) {
	t.Helper()
	resp := PostJSON(t, base+"/students", map[string]interface{}{"id": id, "name": name})
	require.Equal(t, 0, resp.Code, "学生注册失败: %s", resp.Message)
}
