package tui

import (
	"gift-ledger/internal/models"

	"github.com/rivo/tview"
)

// Form labels double as lookup keys.
const (
	labelRecipient = "Recipient"
	labelOccasion  = "Occasion"
	labelIdea      = "Idea"
	labelBudget    = "Budget"
	labelDate      = "Date"
	labelYear      = "Year"
	labelPurchased = "Purchased"
	labelCost      = "Cost"
)

// openAddForm resets and shows the add form. Blank fields fall back to the
// column defaults when the gift is normalized.
func (a *App) openAddForm() {
	a.form.Clear(true)

	recipient := tview.NewInputField().SetLabel(labelRecipient).SetFieldWidth(30)
	recipient.SetAutocompleteFunc(func(text string) []string {
		return SuggestRecipients(text, a.session.Ledger().Recipients())
	})
	recipient.SetAutocompletedFunc(func(text string, _ int, source int) bool {
		if source != tview.AutocompletedNavigate {
			recipient.SetText(text)
		}
		return source == tview.AutocompletedEnter || source == tview.AutocompletedClick
	})

	a.form.AddFormItem(recipient).
		AddInputField(labelOccasion, "", 30, nil, nil).
		AddInputField(labelIdea, "", 30, nil, nil).
		AddInputField(labelBudget, "", 12, nil, nil).
		AddInputField(labelDate, "", 12, nil, nil).
		AddInputField(labelYear, "", 6, tview.InputFieldInteger, nil).
		AddCheckbox(labelPurchased, false, nil).
		AddInputField(labelCost, "", 12, nil, nil).
		AddButton("Save", func() { a.reportError(a.submitAddForm()) }).
		AddButton("Cancel", a.closeAddForm)

	a.pages.ShowPage(pageAdd)
	a.app.SetFocus(a.form)
}

func (a *App) closeAddForm() {
	a.pages.HidePage(pageAdd)
	a.app.SetFocus(a.table)
}

// draftFromForm collects the form fields as raw cells.
func (a *App) draftFromForm() models.RawRecord {
	text := func(label string) string {
		if field, ok := a.form.GetFormItemByLabel(label).(*tview.InputField); ok {
			return field.GetText()
		}
		return ""
	}
	purchased := false
	if box, ok := a.form.GetFormItemByLabel(labelPurchased).(*tview.Checkbox); ok {
		purchased = box.IsChecked()
	}
	return models.RawRecord{
		Date:          text(labelDate),
		Year:          text(labelYear),
		Recipient:     text(labelRecipient),
		Occasion:      text(labelOccasion),
		Idea:          text(labelIdea),
		Budget:        text(labelBudget),
		Purchased:     models.FormatBool(purchased),
		PurchasedCost: text(labelCost),
	}
}

func (a *App) submitAddForm() error {
	draft := a.draftFromForm()
	a.closeAddForm()
	return a.addGift(draft)
}
