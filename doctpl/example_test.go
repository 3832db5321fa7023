package doctpl_test

import (
	"bytes"
	"fmt"

	"github.com/lvillar/pdfreport"
	"github.com/lvillar/pdfreport/doctpl"
	"github.com/lvillar/pdfreport/fontres"
)

func ExampleRender() {
	template := `{
		"title": "Branch Inventory",
		"orientation": "auto",
		"reference": {"code": "INV-2024-07", "kind": "qr"},
		"sections": [
			{
				"heading": "Stock",
				"columns": ["sku", "item", "qty"],
				"rows": [
					["WDG-001", "Premium Widget", 10],
					["WDG-002", "Deluxe Widget", 5],
					{"sku": "SVC-001", "item": "Installation", "qty": 1}
				]
			},
			{"heading": "Returns", "columns": ["sku", "reason"], "rows": []}
		]
	}`

	var buf bytes.Buffer
	res, err := doctpl.Render(&buf, []byte(template),
		pdfreport.WithFonts(fontres.Fixed(fontres.Builtin())))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Println(res.State, res.Pages, res.Chunks, buf.Len() > 0)
	// Output: normal 1 1 true
}
