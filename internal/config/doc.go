// Package config loads regexscan configuration from local and global YAML
// files. It is internal; CLI code applies the precedence CLI > local > global
// when mapping files into loader and engine options.
package config
