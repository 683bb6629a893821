package drivertest

// an in-memory driver for exercising the scraping engine without a
// portal on the other end. each fake portal is keyed by the url the
// engine navigates to and scripts its table contents and failures.

import (
	"context"
	"fmt"
	"sync"

	"habilitados-backend/lib/driver"
)

type Portal struct {
	// error returned by Navigate to this portal
	FailNavigate error
	// selector -> error returned by Click
	FailClick map[string]error
	// ReadTable blocks until the context expires
	HangReadTable bool
	// successive table contents, one entry per page. an empty Pages
	// means the table selector never resolves, which is how a failed
	// login presents itself.
	Pages [][][]string
	// selector that advances to the next page. clicking it past the
	// last page stays on the last page, mimicking paginators whose
	// "next" control goes inert at the end.
	NextPage string
}

type Driver struct {
	Portals map[string]*Portal

	mu        sync.Mutex
	opened    int
	closed    int
	fillCalls []string
}

func New(portals map[string]*Portal) *Driver {
	return &Driver{Portals: portals}
}

func (d *Driver) Open(ctx context.Context, opts driver.Options) (driver.Session, error) {
	d.mu.Lock()
	d.opened++
	d.mu.Unlock()
	return driver.Bind(&session{driver: d}, opts.EffectiveTimeout()), nil
}

// OpenSessions reports sessions opened but not yet closed, every test
// run should end with this at zero.
func (d *Driver) OpenSessions() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.opened - d.closed
}

// FillCalls returns every (selector, value) pair filled so far,
// formatted "selector=value".
func (d *Driver) FillCalls() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string{}, d.fillCalls...)
}

type session struct {
	driver *Driver
	portal *Portal
	page   int
	closed bool
}

func (s *session) Navigate(ctx context.Context, url string) error {
	portal, ok := s.driver.Portals[url]
	if !ok {
		return fmt.Errorf("unknown url: %s", url)
	}
	if portal.FailNavigate != nil {
		return portal.FailNavigate
	}
	s.portal = portal
	s.page = 0
	return nil
}

func (s *session) Fill(ctx context.Context, selector, value string) error {
	if s.portal == nil {
		return fmt.Errorf("no page loaded")
	}
	s.driver.mu.Lock()
	s.driver.fillCalls = append(s.driver.fillCalls, fmt.Sprintf("%s=%s", selector, value))
	s.driver.mu.Unlock()
	return nil
}

func (s *session) Click(ctx context.Context, selector string) error {
	if s.portal == nil {
		return fmt.Errorf("no page loaded")
	}
	if err, ok := s.portal.FailClick[selector]; ok {
		return err
	}
	if selector == s.portal.NextPage && s.page+1 < len(s.portal.Pages) {
		s.page++
	}
	return nil
}

func (s *session) ReadTable(ctx context.Context, selector string, columns []int) ([][]string, error) {
	if s.portal == nil {
		return nil, fmt.Errorf("no page loaded")
	}
	if s.portal.HangReadTable {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if len(s.portal.Pages) == 0 {
		return nil, fmt.Errorf("selector matched nothing")
	}

	page := s.portal.Pages[s.page]
	if columns == nil {
		return page, nil
	}
	rows := make([][]string, len(page))
	for i, cells := range page {
		row := make([]string, len(columns))
		for j, col := range columns {
			if col < len(cells) {
				row[j] = cells[col]
			}
		}
		rows[i] = row
	}
	return rows, nil
}

func (s *session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.driver.mu.Lock()
	s.driver.closed++
	s.driver.mu.Unlock()
	return nil
}
