package value

import (
	"fmt"
	"sync/atomic"

	"github.com/rivetlang/rivet/internal/hashid"
	"github.com/rivetlang/rivet/internal/statictype"
)

// Category discriminates the heap-allocated containers a Cell can hold.
type Category uint8

const (
	CategoryString Category = iota
	CategoryBytes
	CategoryVec
	CategoryTuple
	CategoryObject
	CategoryStruct
	CategoryVariant
	CategoryFunction
	CategoryRange
	CategoryOption
	CategoryResult
	CategoryFuture
	CategoryGenerator
	CategoryGeneratorState
	CategoryStream
	CategoryIterator
	CategoryFormat
)

// borrow-state sentinel values for Cell.borrow, mirroring a single-writer,
// many-readers lock with no blocking: callers either get a guard or an
// error, there is nothing to wait on in a single-threaded VM.
const (
	borrowFree     = 0
	borrowExclusive = -1
)

// Cell is the shared, reference-counted box behind every heap-category
// Value. It tracks interior borrows the way the host language would track
// a RefCell: any number of concurrent readers, or exactly one writer, never
// both, checked at runtime rather than compile time.
type Cell struct {
	category Category
	rtti     *Rtti
	data     interface{}

	refs   int64
	borrow int32
}

// NewCell allocates a fresh cell with one owning reference.
func NewCell(category Category, rtti *Rtti, data interface{}) *Cell {
	return &Cell{category: category, rtti: rtti, data: data, refs: 1}
}

func (c *Cell) Category() Category { return c.category }
func (c *Cell) Rtti() *Rtti        { return c.rtti }

func (c *Cell) StaticType() *statictype.StaticType {
	if c.rtti != nil {
		return c.rtti.StaticType
	}
	switch c.category {
	case CategoryString:
		return statictype.String
	case CategoryBytes:
		return statictype.Bytes
	case CategoryVec:
		return statictype.Vec
	case CategoryTuple:
		return statictype.Tuple
	case CategoryObject:
		return statictype.Object
	case CategoryRange:
		return statictype.Range
	case CategoryOption:
		return statictype.Option
	case CategoryResult:
		return statictype.Result
	case CategoryFuture:
		return statictype.Future
	case CategoryGenerator:
		return statictype.Generator
	case CategoryGeneratorState:
		return statictype.GeneratorState
	case CategoryStream:
		return statictype.Stream
	case CategoryIterator:
		return statictype.Iterator
	case CategoryFunction:
		return statictype.Function
	case CategoryFormat:
		return statictype.Format
	default:
		return nil
	}
}

func (c *Cell) TypeHash() hashid.Hash {
	if c.rtti != nil {
		return c.rtti.Hash
	}
	if st := c.StaticType(); st != nil {
		return st.Hash
	}
	return hashid.Empty
}

// Clone increments the reference count and returns the same cell; callers
// that hand a Value to two owners call this rather than aliasing the
// pointer silently.
func (c *Cell) Clone() *Cell {
	atomic.AddInt64(&c.refs, 1)
	return c
}

// Drop decrements the reference count. It reports whether this was the
// last owning reference, mirroring Rc::strong_count hitting zero; callers
// that need deterministic cleanup (e.g. releasing a host resource) check
// the return value. There is no finalizer: this runtime declares GC
// non-deterministic and leaves reclamation to Go's collector.
func (c *Cell) Drop() bool {
	return atomic.AddInt64(&c.refs, -1) == 0
}

func (c *Cell) RefCount() int64 {
	return atomic.LoadInt64(&c.refs)
}

// BorrowError reports a conflicting interior borrow.
type BorrowError struct {
	Category Category
	Exclusive bool
}

func (e *BorrowError) Error() string {
	if e.Exclusive {
		return fmt.Sprintf("value: cannot borrow category %d mutably: already borrowed", e.Category)
	}
	return fmt.Sprintf("value: cannot borrow category %d: already borrowed mutably", e.Category)
}

// Guard releases a borrow obtained through Borrow or BorrowMut. It must be
// released exactly once; releasing twice panics, mirroring a double-drop on
// the original RefCell guard.
type Guard struct {
	cell      *Cell
	exclusive bool
	released  bool
}

func (g *Guard) Release() {
	if g == nil {
		return
	}
	if g.released {
		panic("value: borrow guard released twice")
	}
	g.released = true
	if g.exclusive {
		atomic.StoreInt32(&g.cell.borrow, borrowFree)
		return
	}
	atomic.AddInt32(&g.cell.borrow, -1)
}

// Data returns the underlying container. Callers must hold a Guard (shared
// for reads, exclusive for writes) before dereferencing it through a type
// assertion; Data itself performs no locking.
func (g *Guard) Data() interface{} { return g.cell.data }

// Borrow takes a shared (read) borrow. Fails if the cell is exclusively
// borrowed.
func (c *Cell) Borrow() (*Guard, error) {
	for {
		cur := atomic.LoadInt32(&c.borrow)
		if cur == borrowExclusive {
			return nil, &BorrowError{Category: c.category, Exclusive: false}
		}
		if atomic.CompareAndSwapInt32(&c.borrow, cur, cur+1) {
			return &Guard{cell: c, exclusive: false}, nil
		}
	}
}

// BorrowMut takes an exclusive (write) borrow. Fails if any borrow,
// shared or exclusive, is already outstanding.
func (c *Cell) BorrowMut() (*Guard, error) {
	if !atomic.CompareAndSwapInt32(&c.borrow, borrowFree, borrowExclusive) {
		return nil, &BorrowError{Category: c.category, Exclusive: true}
	}
	return &Guard{cell: c, exclusive: true}, nil
}

func (c *Cell) String() string {
	if s, ok := c.data.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("<%v>", c.category)
}
