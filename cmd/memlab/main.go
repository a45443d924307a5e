// Command memlab creates and destroys allocations with distinct memory
// provisioning strategies so an external monitor can watch the process
// footprint change.
package main

func main() {
	execute()
}
