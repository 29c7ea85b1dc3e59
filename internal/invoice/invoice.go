// Package invoice renders the printable Arabic HTML invoice for an order.
// There is exactly one template; every caller goes through Render.
package invoice

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"

	"mawasim-api/internal/domain"
)

//go:embed template.html
var templateHTML string

var tmpl = template.Must(template.New("invoice").Parse(templateHTML))

var statusArabic = map[string]string{
	domain.StatusNew:       "جديد",
	domain.StatusConfirmed: "مؤكد",
	domain.StatusPreparing: "قيد التحضير",
	domain.StatusDelivered: "تم التسليم",
	domain.StatusCancelled: "ملغي",
}

type itemView struct {
	Name      string
	Qty       int
	Price     string
	LineTotal string
}

type view struct {
	StoreName    string
	ShortID      string
	Date         string
	StatusArabic string
	Customer     domain.Customer
	Items        []itemView
	Total        string
}

// Render writes the invoice HTML for o to w.
func Render(w io.Writer, storeName string, o domain.Order) error {
	items := make([]itemView, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, itemView{
			Name:      it.Name,
			Qty:       it.Qty,
			Price:     euros(it.PriceCents),
			LineTotal: euros(it.PriceCents * int64(it.Qty)),
		})
	}

	label, ok := statusArabic[o.Status]
	if !ok {
		label = o.Status
	}

	return tmpl.Execute(w, view{
		StoreName:    storeName,
		ShortID:      o.ShortID(),
		Date:         o.CreatedAt.Format("2006-01-02 15:04"),
		StatusArabic: label,
		Customer:     o.Customer,
		Items:        items,
		Total:        euros(o.TotalCents),
	})
}

func euros(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
