// Package library 图书馆应用层
//
// Session是整个系统唯一的上下文对象：持有馆藏、名册、借阅历史、推荐图，
// 由驱动层（交互式shell、HTTP服务）共享。领域服务本身不加锁，
// Session用一把互斥锁把它们当作一个一致性单元串行访问。
package library

import (
	"context"
	"errors"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/circulation"
	"github.com/xiebiao/library/internal/domain/recommend"
	"github.com/xiebiao/library/internal/domain/student"
	"github.com/xiebiao/library/pkg/logger"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/tracing"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

const tracerName = "library"

// Option Session配置项
type Option func(*settings)

type settings struct {
	strictBookIDs    bool
	strictStudentIDs bool
	cache            RecommendationCache
	publisher        EventPublisher
}

// WithStrictBookIDs 重复图书编号报错而不是覆盖
func WithStrictBookIDs(strict bool) Option {
	return func(s *settings) { s.strictBookIDs = strict }
}

// WithStrictStudentIDs 重复学号报错而不是覆盖
func WithStrictStudentIDs(strict bool) Option {
	return func(s *settings) { s.strictStudentIDs = strict }
}

// WithCache 设置推荐缓存
func WithCache(c RecommendationCache) Option {
	return func(s *settings) {
		if c != nil {
			s.cache = c
		}
	}
}

// WithPublisher 设置借还事件发布者
func WithPublisher(p EventPublisher) Option {
	return func(s *settings) {
		if p != nil {
			s.publisher = p
		}
	}
}

// Session 图书馆会话
type Session struct {
	mu sync.Mutex

	books    book.Repository
	students student.Repository
	history  *circulation.HistoryLog

	catalog     book.Catalog
	roster      student.Roster
	circulation circulation.Service
	engine      recommend.Engine

	cache     RecommendationCache
	publisher EventPublisher
}

// NewSession 创建会话
func NewSession(books book.Repository, students student.Repository, opts ...Option) *Session {
	cfg := settings{cache: NoopCache{}, publisher: NoopPublisher{}}
	for _, opt := range opts {
		opt(&cfg)
	}

	metrics.InitMetrics()

	graph := recommend.NewGraph()
	history := circulation.NewHistoryLog()
	catalog := book.NewCatalog(books, graph, book.WithStrictIDs(cfg.strictBookIDs))
	roster := student.NewRoster(students, student.WithStrictIDs(cfg.strictStudentIDs))

	s := &Session{
		books:       books,
		students:    students,
		history:     history,
		catalog:     catalog,
		roster:      roster,
		circulation: circulation.NewService(catalog, roster, history),
		engine:      recommend.NewEngine(graph, catalog),
		cache:       cfg.cache,
		publisher:   cfg.publisher,
	}

	// 缓存可能残留上一个进程的结果
	s.cache.Invalidate(context.Background())
	return s
}

// AddBook 上架图书
func (s *Session) AddBook(ctx context.Context, req AddBookRequest) (_ *BookDTO, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "Session.AddBook")
	defer func() { tracing.EndSpan(span, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	b := book.NewBook(req.ID, req.Title, req.Author, req.Genre, req.Rating, req.Quantity)
	if err := s.catalog.AddBook(ctx, b); err != nil {
		logger.Ctx(ctx).Debug().Err(err).Int("book_id", req.ID).Msg("上架失败")
		return nil, err
	}
	s.cache.Invalidate(ctx)
	s.refreshCatalogGauge(ctx)

	logger.Ctx(ctx).Debug().Int("book_id", b.ID).Str("genre", b.Genre).Msg("图书已上架")
	return toBookDTO(b), nil
}

// GetBook 查询图书
func (s *Session) GetBook(ctx context.Context, id int) (_ *BookDTO, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "Session.GetBook")
	defer func() { tracing.EndSpan(span, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.catalog.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}
	return toBookDTO(b), nil
}

// ListAvailable 列出可借图书,按编号排序
func (s *Session) ListAvailable(ctx context.Context) (_ []*BookDTO, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "Session.ListAvailable")
	defer func() { tracing.EndSpan(span, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	books, err := s.catalog.ListAvailable(ctx)
	if err != nil {
		return nil, err
	}
	sortByID(books)
	return toBookDTOs(books), nil
}

// SearchByTitle 按书名搜索,按编号排序
func (s *Session) SearchByTitle(ctx context.Context, query string) (_ []*BookDTO, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "Session.SearchByTitle")
	defer func() { tracing.EndSpan(span, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	books, err := s.catalog.SearchByTitle(ctx, query)
	if err != nil {
		return nil, err
	}
	sortByID(books)
	return toBookDTOs(books), nil
}

// BooksByAuthor 按作者查询
func (s *Session) BooksByAuthor(ctx context.Context, author string) (_ []*BookDTO, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "Session.BooksByAuthor")
	defer func() { tracing.EndSpan(span, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	books, err := s.catalog.BooksByAuthor(ctx, author)
	if err != nil {
		return nil, err
	}
	return toBookDTOs(books), nil
}

// BooksByGenre 按类型查询
func (s *Session) BooksByGenre(ctx context.Context, genre string) (_ []*BookDTO, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "Session.BooksByGenre")
	defer func() { tracing.EndSpan(span, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	books, err := s.catalog.BooksByGenre(ctx, genre)
	if err != nil {
		return nil, err
	}
	return toBookDTOs(books), nil
}

// RegisterStudent 注册学生
func (s *Session) RegisterStudent(ctx context.Context, req RegisterStudentRequest) (_ *StudentDTO, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "Session.RegisterStudent")
	defer func() { tracing.EndSpan(span, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.roster.Register(ctx, req.ID, req.Name)
	if err != nil {
		return nil, err
	}
	if n, err := s.students.Count(ctx); err == nil {
		metrics.SetGauge(metrics.RosterStudents, float64(n))
	}

	logger.Ctx(ctx).Debug().Int("student_id", st.ID).Msg("学生已注册")
	return toStudentDTO(st), nil
}

// GetStudent 查询学生
func (s *Session) GetStudent(ctx context.Context, id int) (_ *StudentDTO, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "Session.GetStudent")
	defer func() { tracing.EndSpan(span, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.roster.GetStudent(ctx, id)
	if err != nil {
		return nil, err
	}
	return toStudentDTO(st), nil
}

// Borrow 借书
func (s *Session) Borrow(ctx context.Context, studentID, bookID int) (err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "Session.Borrow")
	defer func() { tracing.EndSpan(span, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.circulation.Borrow(ctx, studentID, bookID)
	s.recordCirculation(ctx, ActionBorrowed, studentID, bookID, err)
	if err != nil {
		return err
	}
	metrics.SetGauge(metrics.BorrowHistoryLength, float64(s.history.Len()))
	return nil
}

// Return 还书
func (s *Session) Return(ctx context.Context, studentID, bookID int) (err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "Session.Return")
	defer func() { tracing.EndSpan(span, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.circulation.Return(ctx, studentID, bookID)
	s.recordCirculation(ctx, ActionReturned, studentID, bookID, err)
	return err
}

// History 借阅历史,最新的在前
func (s *Session) History(ctx context.Context) (_ []*BookDTO, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "Session.History")
	defer func() { tracing.EndSpan(span, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	books, err := s.circulation.History(ctx)
	if err != nil {
		return nil, err
	}
	return toBookDTOs(books), nil
}

// Events 借阅记录(含学号和时间),最新的在前
func (s *Session) Events(ctx context.Context) (_ []*HistoryEntryDTO, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "Session.Events")
	defer func() { tracing.EndSpan(span, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	events := s.circulation.Events(ctx)
	out := make([]*HistoryEntryDTO, 0, len(events))
	for _, e := range events {
		title := ""
		b, err := s.catalog.GetBook(ctx, e.BookID)
		switch {
		case err == nil:
			title = b.Title
		case !errors.Is(err, book.ErrBookNotFound):
			return nil, err
		}
		out = append(out, toHistoryEntryDTO(e, title))
	}
	return out, nil
}

// Recommend 推荐与bookID同类型连通的可借图书
// 先查缓存,未命中时遍历推荐图并回填
func (s *Session) Recommend(ctx context.Context, bookID int) (_ []*BookDTO, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "Session.Recommend")
	defer func() { tracing.EndSpan(span, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	defer func() {
		metrics.ObserveHistogram(metrics.RecommendationDuration, time.Since(start).Seconds())
	}()

	if ids, ok := s.cache.Get(ctx, bookID); ok {
		books, err := s.resolve(ctx, ids)
		if err != nil {
			return nil, err
		}
		metrics.IncCounterVec(metrics.RecommendationsServedTotal, map[string]string{"source": "cache"})
		return toBookDTOs(books), nil
	}

	books, err := s.engine.Recommend(ctx, bookID)
	if err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(books))
	for _, b := range books {
		ids = append(ids, b.ID)
	}
	s.cache.Set(ctx, bookID, ids)
	metrics.IncCounterVec(metrics.RecommendationsServedTotal, map[string]string{"source": "graph"})

	logger.Ctx(ctx).Debug().Int("book_id", bookID).Ints("recommended", ids).Msg("推荐完成")
	return toBookDTOs(books), nil
}

// resolve 把缓存的ID解析为图书
// 已不存在或已全部借出的图书跳过
func (s *Session) resolve(ctx context.Context, ids []int) ([]*book.Book, error) {
	books := make([]*book.Book, 0, len(ids))
	for _, id := range ids {
		b, err := s.catalog.GetBook(ctx, id)
		if errors.Is(err, book.ErrBookNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if b.IsAvailable() {
			books = append(books, b)
		}
	}
	return books, nil
}

// recordCirculation 借还之后的公共处理:指标、缓存失效、事件发布
// 事件发布失败只记日志,不影响借还结果
func (s *Session) recordCirculation(ctx context.Context, action string, studentID, bookID int, err error) {
	result := "success"
	if err != nil {
		result = resultLabel(err)
	}
	metrics.IncCounterVec(metrics.CirculationTotal, map[string]string{"action": action, "result": result})

	log := logger.Ctx(ctx).With().Str("action", action).Int("student_id", studentID).Int("book_id", bookID).Logger()
	if err != nil {
		log.Debug().Err(err).Msg("借还失败")
		return
	}

	s.cache.Invalidate(ctx)

	event := CirculationEvent{
		Action:     action,
		StudentID:  studentID,
		BookID:     bookID,
		OccurredAt: time.Now(),
	}
	if pubErr := s.publisher.Publish(ctx, event); pubErr != nil {
		log.Warn().Err(pubErr).Msg("借还事件发布失败")
	}
	log.Debug().Msg("借还成功")
}

func (s *Session) refreshCatalogGauge(ctx context.Context) {
	if n, err := s.books.Count(ctx); err == nil {
		metrics.SetGauge(metrics.CatalogBooks, float64(n))
	}
}

// resultLabel 错误转为指标标签(业务码)
func resultLabel(err error) string {
	return strconv.Itoa(apperrors.CodeOf(err))
}

func sortByID(books []*book.Book) {
	slices.SortFunc(books, func(a, b *book.Book) int { return a.ID - b.ID })
}
