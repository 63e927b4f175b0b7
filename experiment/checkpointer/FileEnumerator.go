package checkpointer

import (
	"fmt"
	"strings"
)

// FilenameEnumerator returns a function which returns filenames with a
// counter suffix. The first call returns prefix followed by start+1,
// and every later call increments the counter. A leading "." is added
// to extension if it is missing, so that
//
//	FilenameEnumerator(0, "q", "gob")
//
// produces q1.gob, q2.gob, ...
func FilenameEnumerator(start int, prefix, extension string) func() string {
	if extension != "" && !strings.HasPrefix(extension, ".") {
		extension = "." + extension
	}

	i := start
	return func() string {
		i++
		return fmt.Sprintf("%v%v%v", prefix, i, extension)
	}
}
