package fingerprint_test

import (
	"fmt"

	"github.com/matzehuels/cipherwen/pkg/fingerprint"
)

func ExampleFind() {
	fp, err := fingerprint.Find([]string{"APPLE", "APRON"}, 1)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(fp.Position, fp.Length, fp.Segments)
	// Output: 2 1 [P R]
}
