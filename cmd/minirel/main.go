// Command minirel is an interactive REPL over one local engine handle:
// read a statement terminated by ';', run it, print the result.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/minirel/minirel/internal/exec"
	"github.com/minirel/minirel/internal/storage"
)

var (
	flagDBPath   = flag.String("db", "data/dbfile", "database file path")
	flagPageSize = flag.Int("page-size", storage.DefaultPageSize, "page size in bytes")
)

func main() {
	flag.Parse()

	engine, err := storage.NewEngine(*flagDBPath, *flagPageSize)
	if err != nil {
		fmt.Fprintln(os.Stderr, "open error:", err)
		os.Exit(1)
	}
	defer engine.Close()

	runREPL(engine)
}

func runREPL(engine *storage.Engine) {
	sc := bufio.NewScanner(os.Stdin)
	sc.Buffer(make([]byte, 1024), 4*1024*1024)

	interactive := false
	if fi, err := os.Stdin.Stat(); err == nil {
		interactive = (fi.Mode() & os.ModeCharDevice) != 0
	}

	var buf strings.Builder
	for {
		if interactive {
			if buf.Len() == 0 {
				fmt.Print("sql> ")
			} else {
				fmt.Print(" ... ")
			}
		}

		if !sc.Scan() {
			return
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		buf.WriteString(line)
		buf.WriteString(" ")
		if !strings.HasSuffix(line, ";") {
			continue
		}

		stmt := strings.TrimSpace(buf.String())
		buf.Reset()

		result, err := exec.Run(engine, stmt)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			continue
		}
		if result.Warning != "" {
			fmt.Fprintln(os.Stderr, "warning:", result.Warning)
		}
		printRows(result.Rows)
	}
}

func printRows(rows []*storage.Row) {
	if len(rows) == 0 {
		fmt.Println("OK")
		return
	}
	for _, row := range rows {
		m := make(map[string]storage.Value, len(row.Keys()))
		for _, k := range row.Keys() {
			v, _ := row.Get(k)
			m[k] = v
		}
		b, _ := json.Marshal(m)
		fmt.Println(string(b))
	}
}
