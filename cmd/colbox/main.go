// Command colbox reconstructs the text columns of PDF pages.
package main

func main() {
	Execute()
}
