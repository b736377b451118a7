package arena

import "fmt"

func panicerr(fmsg string, args ...interface{}) {
	panic(fmt.Errorf(fmsg, args...))
}

// alignup round off to the next multiple of align, which is expected
// to be a power of 2.
func alignup(off, align int64) int64 {
	return (off + align - 1) &^ (align - 1)
}

func ispow2(align int64) bool {
	return align > 0 && (align&(align-1)) == 0
}

func maxi64(x, y int64) int64 {
	if x > y {
		return x
	}
	return y
}
