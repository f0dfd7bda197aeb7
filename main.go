// Public domain.

package main

import "github.com/galneighbors/gnf/internal/gnfprog"

func main() { gnfprog.Main() }
