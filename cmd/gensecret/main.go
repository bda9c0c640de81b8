package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
)

const SecretKeyBytesLen = 32

// Prints a fresh base64-encoded signing key, the format SECRET_KEY expects
func main() {
	b := make([]byte, SecretKeyBytesLen)

	_, err := rand.Read(b)
	if err != nil {
		fmt.Printf("error while generating secret key: %v", err)
		os.Exit(1)
	}

	fmt.Println(base64.StdEncoding.EncodeToString(b))
}
