package config_test

import (
	"context"
	"fmt"

	"github.com/walteh/scenereplace/pkg/config"
)

func ExampleConfig_Requests() {
	cfg, err := config.GetParser("rules.yaml").Parse(context.Background(), []byte(`
defaults:
  match_case: false
rules:
  - find: Colour
    replace: Color
  - find: ACME
    replace: Initech
    match_case: true
    scope: currentArtboard
`))
	if err != nil {
		panic(err)
	}

	for _, req := range cfg.Requests() {
		fmt.Println(req.String())
	}
	// Output:
	// "Colour" -> "Color" (ignore case, wholeDocument)
	// "ACME" -> "Initech" (match case, currentArtboard)
}
