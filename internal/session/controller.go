package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/akozadaev/findmydorm/internal/filter"
	"github.com/akozadaev/findmydorm/internal/models"
	"github.com/akozadaev/findmydorm/internal/registry"
	"github.com/akozadaev/findmydorm/internal/source"
)

// Controller управляет состоянием одной сессии и запускает загрузку объявлений.
// Каждый поиск получает номер; результат применяется, только если его номер
// совпадает с последним запущенным. Предыдущая загрузка при этом отменяется.
type Controller struct {
	mu          sync.Mutex
	state       State
	registry    *registry.Registry
	fetcher     source.Fetcher
	logger      *zap.Logger
	baseCtx     context.Context
	stop        context.CancelFunc
	cancelFetch context.CancelFunc
	wg          sync.WaitGroup
	lastSeen    time.Time
	now         func() time.Time
}

// NewController создает контроллер с начальным состоянием.
func NewController(reg *registry.Registry, fetcher source.Fetcher, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, stop := context.WithCancel(context.Background())
	c := &Controller{
		state:    NewState(),
		registry: reg,
		fetcher:  fetcher,
		logger:   logger,
		baseCtx:  ctx,
		stop:     stop,
		now:      time.Now,
	}
	c.lastSeen = c.now()
	return c
}

// State возвращает снимок текущего состояния.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touch()
	return c.state.Clone()
}

// Visible возвращает объявления после применения текущих фильтров.
func (c *Controller) Visible() []models.Listing {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touch()
	return filter.Apply(c.state.Listings, c.state.Criteria)
}

// Snapshot возвращает состояние и видимые объявления, снятые под одной блокировкой.
func (c *Controller) Snapshot() (State, []models.Listing) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touch()
	return c.state.Clone(), filter.Apply(c.state.Listings, c.state.Criteria)
}

// Dispatch применяет действие к состоянию.
func (c *Controller) Dispatch(a Action) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dispatchLocked(a)
}

func (c *Controller) dispatchLocked(a Action) (State, error) {
	c.touch()
	next, err := Reduce(c.state, a)
	if err != nil {
		return c.state.Clone(), err
	}

	// Уход со страницы результатов инвалидирует незавершенную загрузку
	if c.state.Loading && !next.Loading {
		c.cancelInFlight()
	}
	c.state = next
	return next.Clone(), nil
}

// SelectCity выбирает город по идентификатору справочника.
func (c *Controller) SelectCity(cityID string) (State, error) {
	city := c.registry.FindCity(cityID)
	if city == nil {
		return c.State(), ErrUnknownCity
	}
	return c.Dispatch(SelectCity{City: city})
}

// SelectUniversity выбирает университет внутри выбранного города.
func (c *Controller) SelectUniversity(universityID string) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	city := c.state.Selection.City
	if city == nil {
		return c.state.Clone(), ErrUnknownUniversity
	}
	university := c.registry.FindUniversity(city, universityID)
	if university == nil {
		return c.state.Clone(), ErrUnknownUniversity
	}
	return c.dispatchLocked(SelectUniversity{University: university})
}

// StartSearch запускает загрузку объявлений в фоне и сразу возвращает
// состояние загрузки. Канал закрывается, когда загрузка завершена.
func (c *Controller) StartSearch() (State, <-chan struct{}, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := c.dispatchLocked(SearchStarted{})
	if err != nil {
		return next, nil, err
	}

	c.cancelInFlight()
	ctx, cancel := context.WithCancel(c.baseCtx)
	c.cancelFetch = cancel

	seq := next.Seq
	city := next.Selection.City.Name
	university := next.Selection.University.Name
	done := make(chan struct{})

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer close(done)
		defer cancel()

		listings := c.fetcher.FetchListings(ctx, city, university)
		c.resolve(seq, listings)
	}()

	return next, done, nil
}

// Search запускает поиск и ждет его завершения или отмены ctx.
// Если за это время начат более новый поиск, возвращается актуальное состояние.
func (c *Controller) Search(ctx context.Context) (State, error) {
	_, done, err := c.StartSearch()
	if err != nil {
		return c.State(), err
	}

	select {
	case <-done:
		return c.State(), nil
	case <-ctx.Done():
		return c.State(), ctx.Err()
	}
}

func (c *Controller) resolve(seq uint64, listings []models.Listing) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := Reduce(c.state, SearchResolved{Seq: seq, Listings: listings})
	if errors.Is(err, ErrStaleResult) {
		c.logger.Debug("discarded stale search result",
			zap.Uint64("seq", seq), zap.Uint64("current_seq", c.state.Seq))
		return
	}
	if err != nil {
		c.logger.Error("failed to apply search result", zap.Error(err))
		return
	}
	c.state = next
}

// SelectListing открывает карточку объекта из текущих результатов.
func (c *Controller) SelectListing(id string) (State, error) {
	return c.Dispatch(SelectListing{ID: id})
}

// UpdateListing применяет правки к объекту текущих результатов.
func (c *Controller) UpdateListing(l models.Listing) (State, error) {
	return c.Dispatch(UpdateListing{Listing: l})
}

// SetFilters заменяет фильтры целиком.
func (c *Controller) SetFilters(criteria models.FilterCriteria) (State, error) {
	return c.Dispatch(SetFilters{Criteria: criteria})
}

// Close отменяет незавершенную загрузку и ждет завершения фоновых горутин.
func (c *Controller) Close() {
	c.stop()
	c.wg.Wait()
}

// IdleSince возвращает время последнего обращения к сессии.
func (c *Controller) IdleSince() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastSeen
}

func (c *Controller) cancelInFlight() {
	if c.cancelFetch != nil {
		c.cancelFetch()
		c.cancelFetch = nil
	}
}

func (c *Controller) touch() {
	c.lastSeen = c.now()
}
