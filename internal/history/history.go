// internal/history/history.go
package history

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/moreffnest/weblist-parsers/internal/utils"
	"github.com/moreffnest/weblist-parsers/pkg/types"
)

// entryCellSelector matches one watched item in the Takeout HTML export
const entryCellSelector = ".content-cell.mdl-cell.mdl-cell--6-col.mdl-typography--body-1"

// takeoutTitlePrefix precedes every title in Takeout JSON records
const takeoutTitlePrefix = "Watched "

// Observer receives a count of parsed events per format
type Observer interface {
	HistoryParsed(format string, events int)
}

// Parser reads watch-history exports
type Parser struct {
	logger   utils.Logger
	observer Observer
}

// Option configures a Parser
type Option func(*Parser)

// WithLogger sets the logger
func WithLogger(logger utils.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithObserver sets the event observer
func WithObserver(observer Observer) Option {
	return func(p *Parser) {
		p.observer = observer
	}
}

// NewParser creates a history parser
func NewParser(opts ...Option) *Parser {
	p := &Parser{logger: utils.NopLogger{}}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse reads an export with the default parser
func Parse(r io.Reader, format Format) (types.WatchEventSet, error) {
	return NewParser().Parse(r, format)
}

// ParseFile reads an export file with the default parser
func ParseFile(path string) (types.WatchEventSet, error) {
	return NewParser().ParseFile(path)
}

// ParseFile reads an export, choosing the format from the file extension.
// An unknown extension fails before the file is opened.
func (p *Parser) ParseFile(path string) (types.WatchEventSet, error) {
	format, err := FormatFromExtension(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history file: %w", err)
	}
	defer f.Close()

	return p.Parse(f, format)
}

// Parse reads an export in the given format
func (p *Parser) Parse(r io.Reader, format Format) (types.WatchEventSet, error) {
	var (
		events types.WatchEventSet
		err    error
	)
	switch format {
	case FormatHTML:
		events, err = p.parseHTML(r)
	case FormatJSON:
		events, err = p.parseJSON(r)
	default:
		return nil, fmt.Errorf("unsupported history format: %d", format)
	}
	if err != nil {
		return nil, err
	}

	p.logger.WithField("format", format.String()).Infof("parsed %d watch events", events.Len())
	if p.observer != nil {
		p.observer.HistoryParsed(format.String(), events.Len())
	}
	return events, nil
}

func (p *Parser) parseHTML(r io.Reader) (types.WatchEventSet, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse history HTML: %w", err)
	}

	events := types.NewWatchEventSet()
	skipped := 0
	doc.Find(entryCellSelector).Each(func(_ int, cell *goquery.Selection) {
		anchors := cell.Find("a")
		// removed or private videos keep the title text but lose a link
		if anchors.Length() < 2 {
			skipped++
			return
		}
		video, channel := anchors.Eq(0), anchors.Eq(1)
		link, _ := video.Attr("href")
		events.Add(types.WatchEvent{
			Title:       utils.CleanText(video.Text()),
			ChannelName: utils.CleanText(channel.Text()),
			Link:        strings.TrimSpace(link),
		})
	})

	if skipped > 0 {
		p.logger.Debugf("skipped %d history entries without video and channel links", skipped)
	}
	return events, nil
}

// jsonRecord accepts both the canonical watch-event shape and Takeout records
type jsonRecord struct {
	Title       string `json:"title"`
	ChannelName string `json:"channelName"`
	Link        string `json:"link"`

	TitleURL  string `json:"titleUrl"`
	Subtitles []struct {
		Name string `json:"name"`
	} `json:"subtitles"`
}

func (rec jsonRecord) event() types.WatchEvent {
	event := types.WatchEvent{
		Title:       rec.Title,
		ChannelName: rec.ChannelName,
		Link:        rec.Link,
	}
	if event.Link == "" && rec.TitleURL != "" {
		event.Link = rec.TitleURL
		event.Title = strings.TrimPrefix(event.Title, takeoutTitlePrefix)
	}
	if event.ChannelName == "" && len(rec.Subtitles) > 0 {
		event.ChannelName = rec.Subtitles[0].Name
	}
	return event
}

func (p *Parser) parseJSON(r io.Reader) (types.WatchEventSet, error) {
	var records []jsonRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode history JSON: %w", err)
	}

	events := types.NewWatchEventSet()
	skipped := 0
	for _, rec := range records {
		event := rec.event()
		if event.Link == "" {
			skipped++
			continue
		}
		events.Add(event)
	}

	if skipped > 0 {
		p.logger.Debugf("skipped %d history records without a link", skipped)
	}
	return events, nil
}

// ToEntries projects watch events into entries titled "<title> (<channel>)"
func ToEntries(events types.WatchEventSet) types.EntrySet {
	return events.Entries()
}
