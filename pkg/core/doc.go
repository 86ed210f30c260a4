// Package core provides a small, stable facade over regexscan's internal
// rule loader and match engine for programs that want to classify tokens
// without shelling out to the CLI.
//
// Example:
//
//	rs, err := core.LoadRules(ctx, "/opt/regex/list", core.Options{})
//	if err != nil { /* handle */ }
//	res := core.Match(rs, "user@example.com")
//	_ = core.MarshalResults(os.Stdout, []core.TokenResult{{Index: 1, ScanResult: res}})
package core
