package renderer

import (
	"bytes"

	"github.com/etnz/wallet"
	md "github.com/nao1215/markdown"
)

// AuditMarkdown renders at most limit entries of the audit trail, newest
// first. A limit <= 0 renders everything.
func AuditMarkdown(entries []wallet.AuditEntry, limit int) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Audit Log")
	if len(entries) == 0 {
		doc.PlainText("Nothing recorded yet.")
		return doc.String()
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignLeft},
		Header:    []string{"When", "Action", "Target", "Name", "Details"},
	}
	for _, e := range entries {
		table.Rows = append(table.Rows, []string{
			e.Timestamp.Format("2006-01-02 15:04"),
			string(e.Action),
			e.TargetType,
			e.TargetName,
			e.Details,
		})
	}
	doc.Table(table)
	return doc.String()
}
