// restmodel CLI - create, update, fetch and delete records on a REST API
// from a schema definition file.
package main

func main() {
	Execute()
}
