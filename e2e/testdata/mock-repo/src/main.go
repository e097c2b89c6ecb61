package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println(os.Getenv("DATABASE_URL"))
	fmt.Println(os.Getenv("STRIPE_KEY"))
}
