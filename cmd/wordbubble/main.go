// Command wordbubble builds a word-sequence graph from submitted phrases.
package main

import "github.com/mesh-intelligence/wordbubble/internal/cli"

func main() {
	cli.Execute()
}
