package store

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ultradoc/backend-go/internal/knowledge"
)

// Document 上传后的文档工件，入库后只读
type Document struct {
	ID         string
	Filename   string
	Text       string
	Chunks     []knowledge.Chunk
	Embeddings [][]float32
	UploadedAt time.Time
}

// DocumentSummary 文档列表项
type DocumentSummary struct {
	DocID      string `json:"doc_id"`
	Filename   string `json:"filename"`
	UploadedAt string `json:"uploaded_at"`
	Chunks     int    `json:"chunks"`
}

// DocumentStore 文档存储抽象
// 进程内默认使用内存实现，可替换为持久化后端
type DocumentStore interface {
	Put(doc *Document) error
	Get(id string) (*Document, bool)
	List() []DocumentSummary
	Count() int
}

// MemoryStore 内存文档存储
type MemoryStore struct {
	mu        sync.RWMutex
	documents map[string]*Document
}

// NewMemoryStore 创建内存文档存储
func NewMemoryStore() DocumentStore {
	return &MemoryStore{
		documents: make(map[string]*Document),
	}
}

func (s *MemoryStore) Put(doc *Document) error {
	if doc == nil || doc.ID == "" {
		return fmt.Errorf("document id is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.documents[doc.ID]; exists {
		return fmt.Errorf("document id already exists: %s", doc.ID)
	}
	s.documents[doc.ID] = doc
	return nil
}

func (s *MemoryStore) Get(id string) (*Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.documents[id]
	return doc, ok
}

func (s *MemoryStore) List() []DocumentSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]DocumentSummary, 0, len(s.documents))
	for _, doc := range s.documents {
		summaries = append(summaries, DocumentSummary{
			DocID:      doc.ID,
			Filename:   doc.Filename,
			UploadedAt: doc.UploadedAt.Format(time.RFC3339),
			Chunks:     len(doc.Chunks),
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].UploadedAt == summaries[j].UploadedAt {
			return summaries[i].DocID < summaries[j].DocID
		}
		return summaries[i].UploadedAt < summaries[j].UploadedAt
	})
	return summaries
}

func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.documents)
}

// NewDocumentID 生成文档ID
// 时间戳便于人读，uuid后缀保证并发上传不冲突
func NewDocumentID(now time.Time) string {
	suffix := strings.Split(uuid.NewString(), "-")[0]
	return fmt.Sprintf("doc_%s_%s", now.Format("20060102_150405"), suffix)
}
