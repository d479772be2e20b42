// Package tui is the interactive terminal front end of the gift ledger. It
// renders one session: filter inputs, the KPI line, the filtered gifts table,
// and prompts for adding gifts, editing purchases, importing and exporting.
package tui

import (
	"errors"
	"fmt"

	"gift-ledger/internal/ledger"
	"gift-ledger/internal/logging"
	"gift-ledger/internal/models"
	"gift-ledger/internal/session"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const (
	pageMain  = "main"
	pageAdd   = "add"
	pageError = "error"
)

const promptIdleLabel = "[gray]a add  space toggle purchased  c cost  i import  e export  / filters  q quit"

var errNoSelection = errors.New("select a gift first")

// Options configures an App.
type Options struct {
	CurrencySymbol string
	// Persist is called after every change to the ledger.
	Persist func() error
	Logger  logging.Logger
}

// App is the terminal UI bound to one session.
type App struct {
	app     *tview.Application
	pages   *tview.Pages
	session *session.Session
	symbol  string
	persist func() error
	logger  logging.Logger

	yearsField     *tview.InputField
	recipientField *tview.InputField
	occasionField  *tview.InputField
	unpurchasedBox *tview.Checkbox
	kpiText        *tview.TextView
	statusText     *tview.TextView
	table          *tview.Table
	prompt         *tview.InputField
	form           *tview.Form
	errorModal     *tview.Modal

	focusRing []tview.Primitive
}

// New builds the UI for s. Nothing is drawn until Run.
func New(s *session.Session, opts Options) *App {
	if opts.Logger == nil {
		opts.Logger = logging.NewDiscardLogger()
	}
	if opts.Persist == nil {
		opts.Persist = func() error { return nil }
	}
	a := &App{
		app:     tview.NewApplication(),
		pages:   tview.NewPages(),
		session: s,
		symbol:  opts.CurrencySymbol,
		persist: opts.Persist,
		logger:  opts.Logger,
	}
	a.build()
	a.refresh()
	return a
}

// Run starts the event loop and blocks until the user quits.
func (a *App) Run() error {
	return a.app.SetRoot(a.pages, true).SetFocus(a.table).Run()
}

// Stop ends the event loop.
func (a *App) Stop() {
	a.app.Stop()
}

func (a *App) build() {
	a.yearsField = tview.NewInputField().
		SetLabel("Years ").
		SetPlaceholder("all").
		SetFieldWidth(20)
	a.yearsField.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEnter || key == tcell.KeyTab {
			a.applyYears(a.yearsField.GetText())
			a.cycleFocus(1)
		}
	})

	a.recipientField = tview.NewInputField().SetLabel("Recipient ").SetFieldWidth(20)
	a.occasionField = tview.NewInputField().SetLabel("Occasion ").SetFieldWidth(20)
	a.unpurchasedBox = tview.NewCheckbox().SetLabel("Unpurchased only ")
	for _, f := range []*tview.InputField{a.recipientField, a.occasionField} {
		f.SetChangedFunc(func(string) { a.applyTextFilter() })
		f.SetDoneFunc(func(tcell.Key) { a.cycleFocus(1) })
	}
	a.unpurchasedBox.SetChangedFunc(func(bool) { a.applyTextFilter() })
	a.unpurchasedBox.SetDoneFunc(func(tcell.Key) { a.cycleFocus(1) })

	filters := tview.NewFlex().
		AddItem(a.yearsField, 0, 1, false).
		AddItem(a.recipientField, 0, 1, false).
		AddItem(a.occasionField, 0, 1, false).
		AddItem(a.unpurchasedBox, 20, 0, false)

	a.kpiText = tview.NewTextView().SetDynamicColors(true)
	a.statusText = tview.NewTextView().SetDynamicColors(true)

	a.table = tview.NewTable().SetSelectable(true, false).SetFixed(1, 0)
	a.table.SetBorder(true).SetTitle(" Gifts ")
	a.table.SetInputCapture(a.tableKeys)

	a.prompt = tview.NewInputField()
	a.deactivatePrompt()

	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(filters, 1, 0, false).
		AddItem(a.kpiText, 1, 0, false).
		AddItem(a.statusText, 1, 0, false).
		AddItem(a.table, 0, 1, true).
		AddItem(a.prompt, 1, 0, false)

	a.form = tview.NewForm()
	a.form.SetBorder(true).SetTitle(" Add gift ")
	a.form.SetCancelFunc(a.closeAddForm)

	a.errorModal = tview.NewModal().
		AddButtons([]string{"OK"}).
		SetDoneFunc(func(int, string) {
			a.pages.HidePage(pageError)
			a.app.SetFocus(a.table)
		})

	a.pages.AddPage(pageMain, layout, true, true).
		AddPage(pageAdd, centered(a.form, 60, 21), true, false).
		AddPage(pageError, a.errorModal, true, false)

	a.focusRing = []tview.Primitive{a.yearsField, a.recipientField, a.occasionField, a.unpurchasedBox, a.table}
}

func centered(p tview.Primitive, width, height int) tview.Primitive {
	return tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(p, height, 1, true).
			AddItem(nil, 0, 1, false), width, 1, true).
		AddItem(nil, 0, 1, false)
}

func (a *App) cycleFocus(step int) {
	current := a.app.GetFocus()
	next := 0
	for i, p := range a.focusRing {
		if p == current {
			next = (i + step + len(a.focusRing)) % len(a.focusRing)
			break
		}
	}
	a.app.SetFocus(a.focusRing[next])
}

func (a *App) tableKeys(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyTab:
		a.cycleFocus(1)
		return nil
	case tcell.KeyBacktab:
		a.cycleFocus(-1)
		return nil
	case tcell.KeyRune:
	default:
		return event
	}

	switch event.Rune() {
	case ' ':
		a.reportError(a.togglePurchased())
	case 'c':
		a.editCost()
	case 'a':
		a.openAddForm()
	case 'i':
		a.activatePrompt("Import from ", "", a.importFile)
	case 'e':
		a.activatePrompt("Export to ", "", a.exportFile)
	case '/':
		a.app.SetFocus(a.yearsField)
	case 'q':
		a.app.Stop()
	default:
		return event
	}
	return nil
}

// refresh redraws everything derived from the session.
func (a *App) refresh() {
	view := a.session.View()

	a.kpiText.SetText(fmt.Sprintf("[::b]%s", tview.Escape(a.session.Summary().Format(a.symbol))))
	a.statusText.SetText("[gray]" + StatusText(a.session.Ledger().Len(), len(view)))

	if !a.yearsField.HasFocus() {
		a.yearsField.SetText(FormatYears(a.session.Filter().SortedYears()))
	}

	selected, _ := a.table.GetSelection()
	a.table.Clear()
	for col, h := range tableHeaders {
		a.table.SetCell(0, col, tview.NewTableCell(h).
			SetSelectable(false).
			SetTextColor(tcell.ColorYellow).
			SetAttributes(tcell.AttrBold))
	}
	for r, cells := range TableRows(view, a.symbol) {
		for col, text := range cells {
			cell := tview.NewTableCell(tview.Escape(text)).SetReference(view[r].Index)
			if col >= 6 {
				cell.SetAlign(tview.AlignRight)
			}
			if view[r].Record.Purchased {
				cell.SetTextColor(tcell.ColorGreen)
			}
			a.table.SetCell(r+1, col, cell)
		}
	}
	switch {
	case len(view) == 0:
	case selected < 1:
		a.table.Select(1, 0)
	case selected > len(view):
		a.table.Select(len(view), 0)
	default:
		a.table.Select(selected, 0)
	}
}

// selectedRow returns the view row under the table cursor.
func (a *App) selectedRow() (ledger.Row, bool) {
	r, _ := a.table.GetSelection()
	view := a.session.View()
	if r < 1 || r > len(view) {
		return ledger.Row{}, false
	}
	return view[r-1], true
}

func (a *App) applyYears(text string) {
	years, err := ParseYears(text)
	if err != nil {
		a.reportError(err)
		return
	}
	if len(years) == 0 {
		a.session.ResetYears()
	} else {
		spec := a.session.Filter()
		next := models.NewFilterSpec(years...)
		next.Recipient, next.Occasion, next.UnpurchasedOnly = spec.Recipient, spec.Occasion, spec.UnpurchasedOnly
		a.session.SetFilter(next)
	}
	a.refresh()
}

func (a *App) applyTextFilter() {
	a.session.SetTextFilter(a.recipientField.GetText(), a.occasionField.GetText(), a.unpurchasedBox.IsChecked())
	a.refresh()
}

func (a *App) togglePurchased() error {
	row, ok := a.selectedRow()
	if !ok {
		return errNoSelection
	}
	a.session.EditPurchase(ledger.PurchaseEdit{
		Index:         row.Index,
		Purchased:     !row.Record.Purchased,
		PurchasedCost: row.Record.PurchasedCost,
	})
	return a.changed()
}

func (a *App) setCost(text string) error {
	row, ok := a.selectedRow()
	if !ok {
		return errNoSelection
	}
	cost, ok := models.ParseAmount(text)
	if !ok {
		return fmt.Errorf("invalid cost %q", text)
	}
	a.session.EditPurchase(ledger.PurchaseEdit{
		Index:         row.Index,
		Purchased:     row.Record.Purchased,
		PurchasedCost: cost,
	})
	return a.changed()
}

func (a *App) editCost() {
	row, ok := a.selectedRow()
	if !ok {
		a.reportError(errNoSelection)
		return
	}
	a.activatePrompt("Cost ", models.FormatAmount(row.Record.PurchasedCost), a.setCost)
}

func (a *App) importFile(path string) error {
	if err := a.session.ImportFile(path); err != nil {
		return err
	}
	a.recipientField.SetText("")
	a.occasionField.SetText("")
	a.unpurchasedBox.SetChecked(false)
	a.session.ResetYears()
	a.logger.Info("Ledger imported",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldCount, a.session.Ledger().Len()))
	return a.changed()
}

func (a *App) exportFile(path string) error {
	if err := a.session.ExportFile(path); err != nil {
		return err
	}
	a.statusText.SetText(fmt.Sprintf("[green]Exported %d gifts to %s", a.session.Ledger().Len(), tview.Escape(path)))
	return nil
}

func (a *App) addGift(draft models.RawRecord) error {
	a.session.Add(draft)
	return a.changed()
}

// changed persists the ledger and redraws.
func (a *App) changed() error {
	a.refresh()
	if err := a.persist(); err != nil {
		return fmt.Errorf("failed to save ledger: %w", err)
	}
	return nil
}

func (a *App) reportError(err error) {
	if err == nil {
		return
	}
	a.logger.WithError(err).Warn("Action failed")
	a.errorModal.SetText(err.Error())
	a.pages.ShowPage(pageError)
	a.app.SetFocus(a.errorModal)
}

// activatePrompt focuses the bottom input line and calls onDone with its
// text on Enter. Escape cancels.
func (a *App) activatePrompt(label, value string, onDone func(string) error) {
	a.prompt.SetLabel(fmt.Sprintf("[lightgreen::b]%s[-:-:-:-]", label)).
		SetText(value).
		SetFieldBackgroundColor(tcell.ColorDimGray)
	a.prompt.SetDoneFunc(func(key tcell.Key) {
		text := a.prompt.GetText()
		a.deactivatePrompt()
		if key == tcell.KeyEnter {
			a.reportError(onDone(text))
		}
	})
	a.app.SetFocus(a.prompt)
}

func (a *App) deactivatePrompt() {
	a.prompt.SetLabel(promptIdleLabel).
		SetText("").
		SetFieldBackgroundColor(tcell.ColorBlack).
		SetDoneFunc(nil)
	a.app.SetFocus(a.table)
}
