package integration

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/beego/beego/v2/server/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ultradoc/backend-go/app/bootstrap"
	"github.com/ultradoc/backend-go/app/router"
)

var appReady bool

// initApp 初始化应用和路由，整个测试进程只做一次
func initApp(t *testing.T) {
	t.Helper()
	if appReady {
		return
	}

	// 不配置API key，走Noop降级路径
	t.Setenv("OPENAI_API_KEY", "")

	app, err := bootstrap.Init()
	require.NoError(t, err)
	require.NotNil(t, app)

	web.BConfig.CopyRequestBody = true
	router.Init()
	appReady = true
}

func doJSON(t *testing.T, method, path string, payload interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	web.BeeApp.Handlers.ServeHTTP(w, req)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "响应应为JSON: %s", w.Body.String())
	return w, resp
}

func uploadFile(t *testing.T, filename, content string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/api/documents/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	w := httptest.NewRecorder()
	web.BeeApp.Handlers.ServeHTTP(w, req)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "响应应为JSON: %s", w.Body.String())
	return w, resp
}

func TestDocumentPipeline(t *testing.T) {
	initApp(t)

	// 根路径与健康检查
	w, resp := doJSON(t, "GET", "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])

	w, resp = doJSON(t, "GET", "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	health := resp["data"].(map[string]interface{})
	assert.Equal(t, "healthy", health["status"])
	// 未配置API key时生成能力不可用
	assert.Equal(t, false, health["generation_available"])

	// 初始文档列表为空
	w, resp = doJSON(t, "GET", "/api/documents", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := resp["data"].(map[string]interface{})
	assert.Empty(t, data["documents"])

	// 不支持的文件格式
	w, resp = uploadFile(t, "photo.png", "binary-ish")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "UNSUPPORTED_FORMAT", resp["code"])

	// 空白文档产出0个chunk，不触发向量化即可入库
	w, resp = uploadFile(t, "empty.txt", "   \n\n   ")
	require.Equal(t, http.StatusOK, w.Code, "上传失败: %s", w.Body.String())
	uploadData := resp["data"].(map[string]interface{})
	docID, _ := uploadData["doc_id"].(string)
	require.True(t, strings.HasPrefix(docID, "doc_"))
	assert.Equal(t, float64(0), uploadData["chunks_created"])
	assert.Equal(t, "success", uploadData["status"])

	// 文档列表包含刚上传的文档
	w, resp = doJSON(t, "GET", "/api/documents", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data = resp["data"].(map[string]interface{})
	assert.Len(t, data["documents"], 1)

	// 问答：不存在的文档
	w, resp = doJSON(t, "POST", "/api/documents/ask",
		map[string]string{"doc_id": "missing", "question": "What is the rate?"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "DOCUMENT_NOT_FOUND", resp["code"])

	// 问答：缺少必填字段
	w, resp = doJSON(t, "POST", "/api/documents/ask", map[string]string{"doc_id": docID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, resp["success"])

	// 问答：空文档命中NOT_FOUND护栏，仍是200响应
	w, resp = doJSON(t, "POST", "/api/documents/ask",
		map[string]string{"doc_id": docID, "question": "What is the rate?"})
	require.Equal(t, http.StatusOK, w.Code)
	answer := resp["data"].(map[string]interface{})
	assert.True(t, strings.HasPrefix(answer["answer"].(string), "NOT_FOUND:"))
	assert.Equal(t, float64(0), answer["confidence"])
	assert.Equal(t, "Guardrail triggered", answer["reasoning"])

	// 抽取：生成能力不可用时降级为全null
	w, resp = doJSON(t, "POST", "/api/documents/extract", map[string]string{"doc_id": docID})
	require.Equal(t, http.StatusOK, w.Code)
	extraction := resp["data"].(map[string]interface{})
	assert.Nil(t, extraction["shipment_id"])
	assert.Nil(t, extraction["carrier_name"])
	assert.Equal(t, float64(0), extraction["confidence"])

	// 抽取：不存在的文档
	w, resp = doJSON(t, "POST", "/api/documents/extract", map[string]string{"doc_id": "missing"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "DOCUMENT_NOT_FOUND", resp["code"])
}

func TestMetricsEndpoint(t *testing.T) {
	initApp(t)

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	web.BeeApp.Handlers.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "documents_uploaded_total")
}
