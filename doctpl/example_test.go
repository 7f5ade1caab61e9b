package doctpl_test

import (
	"bytes"
	"fmt"

	"github.com/lvillar/pagedoc/doctpl"
)

func ExampleRender() {
	template := `
title: Release notes
header: Release notes
footer: Acme Corp
pageSize: Letter
elements:
  - {type: text, text: "Release 2.0", align: C, height: 20, font: {style: B, size: 24}}
  - {type: pagebreak}
  - {type: heading, level: 1, text: "1. Highlights"}
  - {type: list, items: ["Faster layout", "Smaller files"]}
  - {type: heading, level: 2, text: "1.1 Upgrading"}
  - {type: code, lines: ["go get example.com/acme@v2"]}
`

	var buf bytes.Buffer
	if err := doctpl.Render(&buf, []byte(template)); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println(bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	// Output: true
}

func ExampleDocument_Blocks() {
	doc := &doctpl.Document{
		Elements: []doctpl.Element{
			{Type: "heading", Text: "Monthly Report", Level: 1},
			{Type: "list", Items: []string{"Revenue up", "Costs down"}},
			{Type: "hr"},
		},
	}

	blocks, err := doc.Blocks()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	for _, b := range blocks {
		fmt.Printf("%T\n", b)
	}
	// Output:
	// pagedoc.Heading
	// pagedoc.Bullet
	// pagedoc.Bullet
	// pagedoc.Rule
}
