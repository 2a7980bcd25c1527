// Package browse is a terminal browser over pages of catalog results.
package browse

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/jfmyers9/cratedig/pkg/catalog"
	"github.com/rivo/tview"
)

// requestTimeout bounds each page fetch triggered by a key press.
const requestTimeout = 10 * time.Second

// Formatter turns an item into the two lines the list shows for it.
type Formatter[T any] func(item T) (main, secondary string)

// Viewer shows one page of results at a time. n and p move between
// pages, q quits.
type Viewer[T any] struct {
	app    *tview.Application
	list   *tview.List
	status *tview.TextView
	help   *tview.TextView

	title  string
	format Formatter[T]

	// mu guards page and lastErr
	mu      sync.Mutex
	page    *catalog.Page[T]
	lastErr error
}

// New creates a viewer over page. The page is advanced in place as the
// user moves through it.
func New[T any](title string, page *catalog.Page[T], format Formatter[T]) *Viewer[T] {
	v := &Viewer[T]{
		app:    tview.NewApplication(),
		title:  title,
		format: format,
		page:   page,
	}
	v.setupUI()
	v.draw()
	return v
}

// setupUI creates the UI layout
func (v *Viewer[T]) setupUI() {
	v.list = tview.NewList().
		ShowSecondaryText(true)
	v.list.SetBorder(true).
		SetTitle(fmt.Sprintf(" %s ", v.title)).
		SetTitleAlign(tview.AlignLeft)

	v.status = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)

	v.help = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter).
		SetText("[gray]n:next page  p:previous page  q:quit[-]")

	flex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(v.list, 0, 1, true).
		AddItem(v.status, 1, 1, false).
		AddItem(v.help, 1, 1, false)

	v.app.SetInputCapture(v.handleKeyEvent)
	v.app.SetRoot(flex, true)
}

// handleKeyEvent processes keyboard input
func (v *Viewer[T]) handleKeyEvent(event *tcell.EventKey) *tcell.EventKey {
	switch event.Rune() {
	case 'q', 'Q':
		v.app.Stop()
		return nil
	case 'n', 'N':
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		_ = v.Forward(ctx)
		v.draw()
		return nil
	case 'p', 'P':
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		_ = v.Back(ctx)
		v.draw()
		return nil
	}
	return event
}

// Forward moves to the next page. At the last page it does nothing.
func (v *Viewer[T]) Forward(ctx context.Context) error {
	return v.move(ctx, true)
}

// Back moves to the previous page.
func (v *Viewer[T]) Back(ctx context.Context) error {
	return v.move(ctx, false)
}

func (v *Viewer[T]) move(ctx context.Context, forward bool) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	var err error
	if forward {
		err = v.page.Next(ctx)
	} else {
		err = v.page.Previous(ctx)
	}
	v.lastErr = err
	return err
}

// Items returns the formatted rows of the current page.
func (v *Viewer[T]) Items() [][2]string {
	v.mu.Lock()
	defer v.mu.Unlock()

	rows := make([][2]string, len(v.page.Items))
	for i, item := range v.page.Items {
		main, secondary := v.format(item)
		rows[i] = [2]string{main, secondary}
	}
	return rows
}

// Status describes the current page position, or the last error.
func (v *Viewer[T]) Status() string {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.lastErr != nil {
		return fmt.Sprintf("[red]%s[-]", tview.Escape(v.lastErr.Error()))
	}
	if len(v.page.Items) == 0 {
		return fmt.Sprintf("No results (total: %d)", v.page.Total)
	}

	status := fmt.Sprintf("%d-%d of %d", v.page.Offset+1, v.page.Offset+len(v.page.Items), v.page.Total)
	if v.page.HasPrevious() {
		status = "< " + status
	}
	if v.page.HasNext() {
		status += " >"
	}
	return status
}

// draw renders the current page into the widgets.
func (v *Viewer[T]) draw() {
	v.list.Clear()
	for _, row := range v.Items() {
		v.list.AddItem(tview.Escape(row[0]), tview.Escape(row[1]), 0, nil)
	}
	v.status.SetText(v.Status())
}

// Run starts the browser and blocks until the user quits or ctx is
// cancelled.
func (v *Viewer[T]) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		<-ctx.Done()
		v.app.Stop()
	}()

	if err := v.app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
