package main

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
	"syscall"

	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/emellab/campus/core"
	"github.com/emellab/campus/core/content"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	conf     *core.Config
	store    core.DocumentStore
	services *content.Services
	out      io.Writer
}

// keyValues collects repeated -flag key=value arguments.
type keyValues []string

func (kv *keyValues) String() string     { return strings.Join(*kv, ",") }
func (kv *keyValues) Set(v string) error { *kv = append(*kv, v); return nil }

func (kv keyValues) split() (map[string]string, error) {
	pairs := make(map[string]string, len(kv))
	for _, raw := range kv {
		key, val, ok := strings.Cut(raw, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, errors.Errorf("%q: expected key=value", raw)
		}
		pairs[key] = val
	}
	return pairs, nil
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  list -collection NAME [-where KEY=VALUE]... [-limit N] - print stored documents")
	fmt.Fprintln(cli.out, "  update -collection NAME -id ID -set KEY=VALUE... - update fields of a document (password prompted)")
	fmt.Fprintln(cli.out, "  delete -collection NAME -id ID - delete a document (password prompted)")
	fmt.Fprintf(cli.out, "Collections: %s\n", strings.Join(cli.collections(), ", "))
}

func (cli *commandLine) collections() []string {
	var names []string
	for _, m := range cli.services.Managers() {
		names = append(names, m.Collection())
	}
	sort.Strings(names)
	return names
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	listCmd := flag.NewFlagSet("list", flag.ExitOnError)
	listColl := listCmd.String("collection", "", "The collection to list.")
	listLimit := listCmd.Int64("limit", core.DefaultListLimit, "Maximum number of documents.")
	var listWhere keyValues
	listCmd.Var(&listWhere, "where", "Equality filter KEY=VALUE. Can be repeated.")

	updateCmd := flag.NewFlagSet("update", flag.ExitOnError)
	updateColl := updateCmd.String("collection", "", "The collection of the document.")
	updateID := updateCmd.String("id", "", "The document identifier.")
	var updateSet keyValues
	updateCmd.Var(&updateSet, "set", "Field to set KEY=VALUE; JSON arrays and quoted strings are decoded. Can be repeated.")

	deleteCmd := flag.NewFlagSet("delete", flag.ExitOnError)
	deleteColl := deleteCmd.String("collection", "", "The collection of the document.")
	deleteID := deleteCmd.String("id", "", "The document identifier.")

	ctx := context.Background()

	switch args[1] {
	case "list":
		if err := listCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *listColl == "" {
			listCmd.Usage()
			return errHelp
		}
		where, err := listWhere.split()
		if err != nil {
			return err
		}
		return cli.list(ctx, *listColl, where, *listLimit)
	case "update":
		if err := updateCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *updateColl == "" || *updateID == "" || len(updateSet) == 0 {
			updateCmd.Usage()
			return errHelp
		}
		set, err := updateSet.split()
		if err != nil {
			return err
		}
		if err = cli.authenticate(); err != nil {
			return err
		}
		return cli.update(ctx, *updateColl, *updateID, set)
	case "delete":
		if err := deleteCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *deleteColl == "" || *deleteID == "" {
			deleteCmd.Usage()
			return errHelp
		}
		if err := cli.authenticate(); err != nil {
			return err
		}
		return cli.delete(ctx, *deleteColl, *deleteID)
	default:
		cli.printUsage()
		return errHelp
	}
}

// authenticate prompts for the admin password.
func (cli *commandLine) authenticate() error {
	fmt.Fprint(cli.out, "Enter admin password:")
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Fprintln(cli.out)
	if err != nil {
		return errors.Wrap(err, "reading password")
	}
	if subtle.ConstantTimeCompare(pwd, []byte(cli.conf.Admin.Password)) != 1 {
		return core.ErrAuthFailed
	}
	return nil
}

func (cli *commandLine) manager(collection string) (content.Manager, error) {
	m, ok := cli.services.Manager(collection)
	if !ok {
		return nil, errors.Errorf("%q: no such collection (one of %s)", collection, strings.Join(cli.collections(), ", "))
	}
	return m, nil
}

func (cli *commandLine) list(ctx context.Context, collection string, where map[string]string, limit int64) error {
	if _, err := cli.manager(collection); err != nil {
		return err
	}
	var filter core.Filter
	for k, v := range where {
		if filter == nil {
			filter = make(core.Filter, len(where))
		}
		filter[k] = v
	}

	docs, err := cli.store.List(ctx, collection, filter, limit)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cli.out)
	for _, doc := range docs {
		if err = enc.Encode(doc); err != nil {
			return errors.Wrap(err, "encoding document")
		}
	}
	fmt.Fprintf(cli.out, "%d document(s)\n", len(docs))
	return nil
}

func (cli *commandLine) update(ctx context.Context, collection, id string, set map[string]string) error {
	m, err := cli.manager(collection)
	if err != nil {
		return err
	}
	patch := make(core.Document, len(set))
	for k, raw := range set {
		patch[k] = parseValue(raw)
	}

	n, err := m.Update(ctx, id, patch)
	if err != nil {
		return err
	}
	cli.reportCount("updated", n)
	return nil
}

func (cli *commandLine) delete(ctx context.Context, collection, id string) error {
	m, err := cli.manager(collection)
	if err != nil {
		return err
	}
	n, err := m.Delete(ctx, id)
	if err != nil {
		return err
	}
	cli.reportCount("deleted", n)
	return nil
}

func (cli *commandLine) reportCount(action string, n int64) {
	if n == 0 {
		fmt.Fprintln(cli.out, "no document matched")
		return
	}
	fmt.Fprintf(cli.out, "%s %d document(s)\n", action, n)
}

// parseValue reads JSON arrays and quoted strings; anything else is taken as a plain string.
func parseValue(raw string) interface{} {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "[") && !strings.HasPrefix(trimmed, `"`) {
		return raw
	}
	var v interface{}
	if err := json.Unmarshal([]byte(trimmed), &v); err != nil {
		return raw
	}
	return v
}
