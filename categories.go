package wallet

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Pillars returns the pillars.
func (w *Wallet) Pillars() []Pillar { return w.state.Pillars }

// SubCategories returns the sub-categories of a pillar, or all of them when
// pillarID is empty.
func (w *Wallet) SubCategories(pillarID string) []SubCategory {
	if pillarID == "" {
		return w.state.SubCategories
	}
	var list []SubCategory
	for _, s := range w.state.SubCategories {
		if s.PillarID == pillarID {
			list = append(list, s)
		}
	}
	return list
}

// UpdatePillarBudget sets the monthly budget of a pillar.
func (w *Wallet) UpdatePillarBudget(pillarID string, budget decimal.Decimal) bool {
	i := slices.IndexFunc(w.state.Pillars, func(p Pillar) bool { return p.ID == pillarID })
	if i < 0 {
		return false
	}
	p := &w.state.Pillars[i]
	old := p.Budget
	p.Budget = budget
	w.record(ActionUpdate, TargetBudget, p.Name, "from "+w.money(old)+" to "+w.money(budget))
	w.notify(Info, "Budget updated", "%s budget is now %s.", p.Name, w.money(budget))
	w.changed()
	return true
}

// AddSubCategory creates a sub-category under an existing pillar.
func (w *Wallet) AddSubCategory(pillarID, name string) (SubCategory, bool) {
	p, ok := w.state.Pillar(pillarID)
	if !ok {
		return SubCategory{}, false
	}
	s := SubCategory{ID: w.newID(), PillarID: pillarID, Name: name}
	w.state.SubCategories = append(w.state.SubCategories, s)
	w.record(ActionAdd, TargetSubCategory, name, "in "+p.Name)
	w.notify(Success, "Sub-category added", "%s was added to %s.", name, p.Name)
	w.changed()
	return s, true
}

// DeleteSubCategory removes a sub-category and clears the reference from the
// transactions and installments that used it.
func (w *Wallet) DeleteSubCategory(id string) bool {
	i := slices.IndexFunc(w.state.SubCategories, func(s SubCategory) bool { return s.ID == id })
	if i < 0 {
		return false
	}
	s := w.state.SubCategories[i]
	w.state.SubCategories = slices.Delete(w.state.SubCategories, i, i+1)
	for j := range w.state.Transactions {
		if w.state.Transactions[j].SubCategoryID == id {
			w.state.Transactions[j].SubCategoryID = ""
		}
	}
	for j := range w.state.Installments {
		if w.state.Installments[j].SubCategoryID == id {
			w.state.Installments[j].SubCategoryID = ""
		}
	}
	w.record(ActionDelete, TargetSubCategory, s.Name, "")
	w.notify(Warning, "Sub-category deleted", "%s was removed.", s.Name)
	w.changed()
	return true
}

// UpdateMetal sets the holding weight and price per gram of a metal.
func (w *Wallet) UpdateMetal(id MetalID, weight, pricePerGram decimal.Decimal) bool {
	i := slices.IndexFunc(w.state.Metals, func(m Metal) bool { return m.ID == id })
	if i < 0 {
		return false
	}
	m := &w.state.Metals[i]
	m.Weight = weight
	m.CurrentPricePerGram = pricePerGram
	w.record(ActionUpdate, TargetMetal, m.Name, weight.String()+" g at "+w.money(pricePerGram))
	w.notify(Info, "Holding updated", "%s is now worth %s.", m.Name, w.money(m.Value()))
	w.changed()
	return true
}

// UpdateInvestmentSettings replaces the investment settings.
func (w *Wallet) UpdateInvestmentSettings(s InvestmentSettings) {
	w.state.InvestmentSettings = s
	w.record(ActionUpdate, TargetSettings, "investment", "")
	w.changed()
}

// UpdatePassword replaces the application password. An empty password disables it.
func (w *Wallet) UpdatePassword(password string) {
	w.state.Password = password
	details := "password set"
	if password == "" {
		details = "password removed"
	}
	w.record(ActionUpdate, TargetSecurity, "password", details)
	w.notify(Info, "Security updated", "%s.", details)
	w.changed()
}

// CheckPassword reports whether password unlocks the wallet.
func (w *Wallet) CheckPassword(password string) bool {
	return w.state.Password == "" || w.state.Password == password
}
