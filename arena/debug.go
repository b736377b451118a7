//go:build debug

package arena

// initblock poison fresh chunk memory so that reads from unwritten
// arena space stand out while debugging.
func initblock(block []byte) {
	for i := range block {
		block[i] = 0xff
	}
}
