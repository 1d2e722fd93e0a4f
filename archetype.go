package keep

import (
	"reflect"

	"github.com/TheBitDrifter/bark"
	"github.com/TheBitDrifter/mask"
)

type archetypeID uint32

// column is one component's storage for every row of an Archetype's chunks.
// The backing slice is created with reflect.MakeSlice against the
// component's real type, so it is an ordinary GC-traced Go slice rather
// than a raw unsafe byte buffer; typed element access goes back through
// reflect or, for the generic query paths in worldaccess.go and option.go,
// through one interface assertion to *T per row. See DESIGN.md for why this was
// chosen over a byte-offset layout like the original's Rust allocator.
type column struct {
	info  ComponentInfo
	value reflect.Value // slice of the concrete component type
}

func newColumn(info ComponentInfo, capacity int) column {
	sliceType := reflect.SliceOf(info.ID.typ)
	return column{
		info:  info,
		value: reflect.MakeSlice(sliceType, 0, capacity),
	}
}

func (c *column) len() int { return c.value.Len() }

func (c *column) appendZero() {
	c.value = reflect.Append(c.value, reflect.Zero(c.info.ID.typ))
}

// set overwrites row i with v's value (v must hold this column's component
// type, as returned by get on a sibling column of the same archetype).
func (c *column) set(i int, v reflect.Value) {
	c.value.Index(i).Set(v)
}

// get returns row i's value, addressable so the caller can copy it into
// another column's slot via set.
func (c *column) get(i int) reflect.Value {
	return c.value.Index(i)
}

// truncateLast zeroes and drops this column's last row, used once the row
// has already been relocated (or never held live data).
func (c *column) truncateLast() {
	last := c.value.Len() - 1
	c.info.zero(c.value.Index(last).Addr().UnsafePointer())
	c.value = c.value.Slice(0, last)
}

// ptrAt returns a pointer to row i's slot in this column, addressable for
// both read and write access.
func (c *column) ptrAt(i int) reflect.Value {
	return c.value.Index(i).Addr()
}

// chunk is one contiguous block of rows sharing an archetype's signature,
// sized so that every column together stays within the configured chunk
// byte limits (spec "chunked columnar storage").
type chunk struct {
	entities []Entity
	columns  []column
}

func (ch *chunk) len() int { return len(ch.entities) }

// Archetype groups every entity sharing an exact component signature into
// chunked, columnar storage (spec §3/§4.1).
type Archetype struct {
	id        archetypeID
	signature mask.Mask256
	infos     []ComponentInfo // sorted by registry bit index
	capacity  int             // rows per chunk
	chunks    []*chunk

	world *World
}

func newArchetype(id archetypeID, infos []ComponentInfo, w *World) *Archetype {
	infos = sortComponentInfos(infos)

	var sig mask.Mask256
	for _, info := range infos {
		sig.Mark(bitIndexOf(info.ID))
	}

	cfg := GetConfig()
	rowSize := uintptr(0)
	for _, info := range infos {
		rowSize += info.Size
	}
	if rowSize == 0 {
		rowSize = 1
	}
	if rowSize > cfg.ChunkUpperLimit {
		panic(bark.AddTrace(EntityTooLargeError{Size: rowSize, Upper: cfg.ChunkUpperLimit}))
	}
	capacity := int((cfg.ChunkLowerLimit + rowSize - 1) / rowSize)
	if capacity < 1 {
		capacity = 1
	}
	if maxByUpper := int(cfg.ChunkUpperLimit / rowSize); maxByUpper < capacity {
		capacity = maxByUpper
	}
	if capacity < 1 {
		capacity = 1
	}

	return &Archetype{
		id:        id,
		signature: sig,
		infos:     infos,
		capacity:  capacity,
		world:     w,
	}
}

func sortComponentInfos(infos []ComponentInfo) []ComponentInfo {
	out := make([]ComponentInfo, len(infos))
	copy(out, infos)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && bitIndexOf(out[j-1].ID) > bitIndexOf(out[j].ID); j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// Signature reports this archetype's component mask.
func (a *Archetype) Signature() mask.Mask256 { return a.signature }

// Len reports the total number of entities stored across all chunks.
func (a *Archetype) Len() int {
	n := 0
	for _, c := range a.chunks {
		n += c.len()
	}
	return n
}

// Has reports whether this archetype carries component id.
func (a *Archetype) Has(id ComponentId) bool {
	_, ok := a.indexOf(id)
	return ok
}

func (a *Archetype) indexOf(id ComponentId) (int, bool) {
	for i, info := range a.infos {
		if info.ID == id {
			return i, true
		}
	}
	return -1, false
}

func (a *Archetype) newChunk() *chunk {
	cols := make([]column, len(a.infos))
	for i, info := range a.infos {
		cols[i] = newColumn(info, a.capacity)
	}
	return &chunk{columns: cols}
}

// rowLocation identifies a stored entity's chunk and row within it.
type rowLocation struct {
	chunkIndex int
	row        int
}

// append inserts e as a new zero-valued row, returning its location. The
// caller (bundle.go) is responsible for writing every declared component
// into the returned row before it becomes externally observable.
func (a *Archetype) append(e Entity) rowLocation {
	var c *chunk
	idx := len(a.chunks) - 1
	if idx < 0 || a.chunks[idx].len() >= a.capacity {
		c = a.newChunk()
		a.chunks = append(a.chunks, c)
		idx = len(a.chunks) - 1
	} else {
		c = a.chunks[idx]
	}
	c.entities = append(c.entities, e)
	for i := range c.columns {
		c.columns[i].appendZero()
	}
	return rowLocation{chunkIndex: idx, row: c.len() - 1}
}

// swapRemove deletes the row at loc, moving the archetype's global last row
// (the last row of its last chunk) into the vacated slot. Operating at the
// archetype level, rather than within loc's own chunk, keeps every chunk but
// the last full (spec §3: "row i lives in chunk i/capacity"). It returns the
// entity that was relocated (if any) so the caller can update that entity's
// directory location, matching the original's swap-remove compaction
// strategy.
func (a *Archetype) swapRemove(loc rowLocation) (moved Entity, ok bool) {
	lastChunkIdx := len(a.chunks) - 1
	lastChunk := a.chunks[lastChunkIdx]
	lastRow := lastChunk.len() - 1
	movedEntity := lastChunk.entities[lastRow]

	if loc.chunkIndex != lastChunkIdx || loc.row != lastRow {
		dstChunk := a.chunks[loc.chunkIndex]
		dstChunk.entities[loc.row] = movedEntity
		for i := range dstChunk.columns {
			dstChunk.columns[i].set(loc.row, lastChunk.columns[i].get(lastRow))
		}
		moved, ok = movedEntity, true
	}

	lastChunk.entities = lastChunk.entities[:lastRow]
	for i := range lastChunk.columns {
		lastChunk.columns[i].truncateLast()
	}
	if lastChunk.len() == 0 {
		a.chunks = a.chunks[:lastChunkIdx]
	}
	return moved, ok
}

func (a *Archetype) entityAt(loc rowLocation) Entity {
	return a.chunks[loc.chunkIndex].entities[loc.row]
}

func (a *Archetype) ptrAt(loc rowLocation, id ComponentId) (reflect.Value, bool) {
	ci, ok := a.indexOf(id)
	if !ok {
		return reflect.Value{}, false
	}
	c := a.chunks[loc.chunkIndex]
	return c.columns[ci].ptrAt(loc.row), true
}
