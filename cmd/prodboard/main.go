// prodboard serves the production-tracking dashboard over HTTP and MCP.
package main

func main() {
	Execute()
}
