package main

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// tenant_guard scans sqlc query files and ensures every SELECT/UPDATE/DELETE
// query filters on store_id. Files starting with "-- tenant_guard:ignore" are skipped.
// Exit code 0 = ok, 1 = violation, 2 = other error.
func main() {
	root := "internal/db/queries"
	if len(os.Args) > 1 {
		root = os.Args[1]
	}
	deny, err := scan(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tenant_guard error: %v\n", err)
		os.Exit(2)
	}
	if len(deny) > 0 {
		for _, v := range deny {
			fmt.Fprintf(os.Stderr, "VIOLATION: %s\n", v)
		}
		os.Exit(1)
	}
	fmt.Println("tenant_guard: OK")
}

var (
	reName   = regexp.MustCompile(`^--\s*name:\s*(\w+)`)
	reScoped = regexp.MustCompile(`(?i)^\s*(select|update|delete)\b`)
	reStore  = regexp.MustCompile(`(?i)\bstore_id\s*=\s*[$@]?[0-9a-z_.]+`)
	reIgnore = regexp.MustCompile(`^--\s*tenant_guard:ignore\b`)
)

func scan(dir string) ([]string, error) {
	var violations []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".sql" {
			return nil
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer func() {
			_ = f.Close()
		}()
		bad, err := checkQueries(f)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		for _, name := range bad {
			violations = append(violations, path+": "+name)
		}
		return nil
	})
	return violations, err
}

type query struct {
	name   string
	scoped bool
	store  bool
}

// checkQueries returns the names of queries that read or mutate rows without a store_id filter.
func checkQueries(r io.Reader) ([]string, error) {
	s := bufio.NewScanner(r)
	var (
		queries []*query
		current *query
		first   = true
	)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if first && line != "" {
			first = false
			if reIgnore.MatchString(line) {
				return nil, nil
			}
		}
		if m := reName.FindStringSubmatch(line); m != nil {
			current = &query{name: m[1]}
			queries = append(queries, current)
			continue
		}
		if current == nil {
			current = &query{name: "<unnamed>"}
			queries = append(queries, current)
		}
		if reScoped.MatchString(line) {
			current.scoped = true
		}
		if reStore.MatchString(line) {
			current.store = true
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	var bad []string
	for _, q := range queries {
		if q.scoped && !q.store {
			bad = append(bad, q.name)
		}
	}
	return bad, nil
}
