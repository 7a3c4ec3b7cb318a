package renderer

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/etnz/wallet"
	md "github.com/nao1215/markdown"
)

// SettingsMarkdown renders the pillars with their sub-categories, the metal
// holdings and the investment settings.
func SettingsMarkdown(s *wallet.State, cur string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Settings")

	doc.H2("Pillars")
	pillars := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignLeft},
		Header:    []string{"ID", "Name", "Budget", "Sub-categories"},
	}
	for _, p := range s.Pillars {
		var subs []string
		for _, sc := range s.SubCategories {
			if sc.PillarID == p.ID {
				subs = append(subs, sc.Name+" ("+sc.ID+")")
			}
		}
		pillars.Rows = append(pillars.Rows, []string{p.ID, p.Name, wallet.M(p.Budget, cur).String(), strings.Join(subs, ", ")})
	}
	doc.Table(pillars)

	doc.H2("Metals")
	metals := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"Metal", "Weight (g)", "Price per gram", "Value"},
	}
	for _, m := range s.Metals {
		metals.Rows = append(metals.Rows, []string{
			string(m.ID),
			m.Weight.String(),
			wallet.M(m.CurrentPricePerGram, cur).String(),
			wallet.M(m.Value(), cur).String(),
		})
	}
	doc.Table(metals)

	doc.H2("Investment")
	inv := s.InvestmentSettings
	enabled := "disabled"
	if inv.Enabled {
		enabled = "enabled"
	}
	doc.BulletList(
		"Investing "+enabled,
		"Required surplus "+inv.ThresholdPercentage.String()+"%",
		"Minimum "+strconv.Itoa(inv.MinDays)+" days",
	)
	if s.Password != "" {
		doc.PlainText(md.Bold("The wallet is password protected."))
	}
	return doc.String()
}
