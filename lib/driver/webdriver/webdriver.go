package webdriver

// an http driver for form-based portals. it speaks the classic
// server-rendered flow: GET the page, fill form fields in memory,
// submit on click, re-parse whatever comes back. portals that need
// real javascript execution get a different Driver implementation
// behind the same interface.

import (
	"bytes"
	"context"
	"fmt"
	"net/http/cookiejar"
	"net/url"
	"time"

	"habilitados-backend/lib/driver"
	"habilitados-backend/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

type Driver struct{}

func New() Driver {
	return Driver{}
}

func (Driver) Open(ctx context.Context, opts driver.Options) (driver.Session, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	client.SetHeader("user-agent", userAgent)
	client.SetTimeout(opts.EffectiveTimeout() + time.Second)

	telemetry.InstrumentResty(client, "driver/webdriver/http")

	raw := &session{
		http:    client,
		pending: map[string]string{},
	}
	return driver.Bind(raw, opts.EffectiveTimeout()), nil
}

type session struct {
	http *resty.Client
	// url of the last navigation, used to resolve relative links and
	// form actions
	base *url.URL
	doc  *goquery.Document
	// form values filled since the last navigation, flushed on the
	// next submit click
	pending map[string]string
}

func (s *session) Navigate(ctx context.Context, link string) error {
	res, err := s.http.R().
		SetContext(ctx).
		Get(link)
	if err != nil {
		return err
	}
	return s.loadResponse(res)
}

func (s *session) loadResponse(res *resty.Response) error {
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		return err
	}
	s.doc = doc
	s.pending = map[string]string{}
	if res.RawResponse != nil && res.RawResponse.Request != nil {
		s.base = res.RawResponse.Request.URL
	}
	return nil
}

func (s *session) resolve(href string) (string, error) {
	ref, err := url.Parse(href)
	if err != nil {
		return "", err
	}
	if s.base == nil {
		return ref.String(), nil
	}
	return s.base.ResolveReference(ref).String(), nil
}

func (s *session) find(selector string) (*goquery.Selection, error) {
	if s.doc == nil {
		return nil, fmt.Errorf("no page loaded")
	}
	sel := s.doc.Find(selector).First()
	if sel.Length() == 0 {
		return nil, fmt.Errorf("selector matched nothing")
	}
	return sel, nil
}

func (s *session) Fill(ctx context.Context, selector, value string) error {
	sel, err := s.find(selector)
	if err != nil {
		return err
	}
	name := sel.AttrOr("name", "")
	if name == "" {
		return fmt.Errorf("field has no name attribute")
	}
	s.pending[name] = value
	return nil
}

func (s *session) Click(ctx context.Context, selector string) error {
	sel, err := s.find(selector)
	if err != nil {
		return err
	}

	if href := sel.AttrOr("href", ""); href != "" {
		link, err := s.resolve(href)
		if err != nil {
			return err
		}
		return s.Navigate(ctx, link)
	}

	form := sel.Closest("form")
	if form.Length() == 0 {
		return fmt.Errorf("element is neither a link nor inside a form")
	}
	return s.submit(ctx, form)
}

func (s *session) submit(ctx context.Context, form *goquery.Selection) error {
	values := map[string]string{}
	form.Find("input").Each(func(_ int, input *goquery.Selection) {
		name := input.AttrOr("name", "")
		if name == "" {
			return
		}
		values[name] = input.AttrOr("value", "")
	})
	for name, value := range s.pending {
		values[name] = value
	}

	action, err := s.resolve(form.AttrOr("action", ""))
	if err != nil {
		return err
	}

	res, err := s.http.R().
		SetContext(ctx).
		SetFormData(values).
		Post(action)
	if err != nil {
		return err
	}
	return s.loadResponse(res)
}

func (s *session) ReadTable(ctx context.Context, selector string, columns []int) ([][]string, error) {
	table, err := s.find(selector)
	if err != nil {
		return nil, err
	}

	var rows [][]string
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td")
		if cells.Length() == 0 {
			// header row
			return
		}
		if columns == nil {
			row := make([]string, cells.Length())
			cells.Each(func(i int, td *goquery.Selection) {
				row[i] = td.Text()
			})
			rows = append(rows, row)
			return
		}
		row := make([]string, len(columns))
		for i, col := range columns {
			if col < cells.Length() {
				row[i] = cells.Eq(col).Text()
			}
		}
		rows = append(rows, row)
	})
	return rows, nil
}

func (s *session) Close() error {
	s.doc = nil
	s.pending = nil
	return nil
}
