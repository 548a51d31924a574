package efx

// readList decodes n consecutive items. It returns nil for an empty list and
// on failure, leaving the error latched in r.
func readList[T any](r *Reader, n int, read func(*Reader) T) []T {
	if n <= 0 || r.err != nil {
		return nil
	}
	items := make([]T, 0, n)
	for range n {
		v := read(r)
		if r.err != nil {
			return nil
		}
		items = append(items, v)
	}
	return items
}

// readFixedList decodes n fixed-layout records.
func readFixedList[T any](r *Reader, n int) []T {
	return readList(r, n, ReadFixed[T])
}

func writeList[T any](w *Writer, items []T, write func(*Writer, T)) {
	for _, v := range items {
		if w.err != nil {
			return
		}
		write(w, v)
	}
}

func writeFixedList[T any](w *Writer, items []T) {
	writeList(w, items, WriteFixed[T])
}

func readInt16List(r *Reader, n int) []int16 {
	return readList(r, n, (*Reader).ReadInt16)
}

func writeInt16List(w *Writer, items []int16) {
	writeList(w, items, (*Writer).WriteInt16)
}
