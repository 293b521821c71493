// Command sqlite-tools serves SQLite CRUD operations over the MCP stdio
// protocol and an HTTP REST facade.
package main

import "github.com/tomyedwab/sqlite-tools/cmd"

func main() {
	cmd.Execute()
}
