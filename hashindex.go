// Copyright 2025 The Cockroach Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package hashindex provides Index, a hash table for array indexes. The
// design follows the hash_index<> C++ template by Guilherme Lampert, itself
// derived from the idHashIndex class in id Software's DOOM 3 BFG source
// release:
//
//	https://github.com/id-Software/DOOM-3-BFG
//
// # Hash index
//
// An Index associates an integer hash key with the integer index of an
// external, caller-owned array where the mapped value is stored. Unlike a
// map, the Index never stores, reads, or moves the caller's values: it only
// answers "which positions of your array might hold this key?". This lets
// any existing slice gain O(1)-average keyed lookup without being
// restructured into a key/value container.
//
// The layout is two integer arrays sharing one index type. The bucket array
// has power-of-two length; bucket i holds the index of the most recently
// inserted entry whose key masks to i, or the null sentinel. The index chain
// is a parallel array with one slot per external array position; slot i holds
// the index of the next entry in the same bucket's list, forming singly
// linked lists realized as array links. The all-ones bit pattern of the index
// type is reserved as the null sentinel and is never a valid external index.
//
// A new Index allocates nothing. Until the first insertion both arrays point
// at a one-element sentinel and lookupMask is zero, so First and Next collapse
// every probe to that sentinel slot without branching on the allocation
// state. Once allocated, lookupMask has all bits set and the same expressions
// become plain masked loads. The bucket array's power-of-two length makes
// key%len a single AND with len-1.
//
// Because callers sometimes insert or remove an element in the middle of
// their external array (shifting every later element by one), the Index also
// provides InsertAtIndex and EraseAndRemoveIndex, which renumber every stored
// index at or beyond the mutation point and shift the chain so the structure
// stays aligned with the external array without a rebuild.
//
// # Usage
//
//	type Thing struct {
//		Name string
//		...
//	}
//
//	var (
//		idx    = hashindex.New[uint32, uint64]()
//		things []Thing
//	)
//
// Insertion:
//
//	t := makeThing()
//	things = append(things, t)
//	idx.Insert(hash(t.Name), uint32(len(things)-1))
//
// Lookup:
//
//	name := ...
//	i := hashindex.FindFunc(idx, hash(name), name, things,
//		func(name string, item Thing) bool {
//			return name == item.Name
//		})
//	// i == hashindex.NullIndex[uint32]() if absent, a position in things
//	// otherwise.
//
// Removal:
//
//	idx.Erase(hash(name), i)
//
// The Index computes no hashes itself; keys arrive pre-hashed, so the caller
// picks the hash function and the key width independently of the stored
// value type.
//
// An Index is NOT goroutine-safe.
package hashindex

import (
	"fmt"
	"slices"
	"strings"
	"unsafe"
)

const debug = false

const (
	// defaultInitialSize is the bucket count and index chain size used by New
	// when no WithInitialSize option is given. Larger sizes reduce collisions
	// and reallocations at the cost of memory.
	defaultInitialSize = 1024
	// defaultGranularity is the rounding unit for index chain growth. Growth
	// requests are rounded up to a multiple of the granularity to amortize
	// reallocation cost.
	defaultGranularity = 1024
)

// IndexType is the constraint for the integer type used to store external
// array indexes. A narrower type saves memory on every bucket and chain
// slot; uint32 is a good default since the full 64-bit indexing range is
// rarely needed. The all-ones bit pattern of the type is reserved as the
// null sentinel, so it cannot be used as an index.
type IndexType interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~int |
		~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint | ~uintptr
}

// KeyType is the constraint for the hash key type. Keys are produced by a
// caller-supplied hash function and only appear in the public interface, so
// any integer width that fits the caller's hash function works.
type KeyType interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~int |
		~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint | ~uintptr
}

// NullIndex returns the reserved sentinel of the index type I: the all-ones
// bit pattern. First, Next, Find, and FindFunc return it to mean "no entry".
func NullIndex[I IndexType]() I {
	return ^I(0)
}

// Index is a hash table for array indexes with First/Next/Find lookup,
// Insert/Erase mutation, and the index-shifting InsertAtIndex and
// EraseAndRemoveIndex operations. The zero value is not usable; construct
// with New.
//
// An Index is NOT goroutine-safe.
type Index[I IndexType, K KeyType] struct {
	// buckets is indexed by key & hashMask. A slot holds the index of the
	// most recently inserted entry mapping to that bucket, or the null
	// sentinel. When the Index is unallocated, buckets points at a
	// one-element sentinel slice holding the null index which is never
	// modified; together with lookupMask this keeps First branch-free.
	buckets []I
	// chain holds, at slot i, the index of the next entry in the same
	// bucket's list as entry i, or the null sentinel. Its length covers
	// every index ever inserted. Like buckets, it points at a one-element
	// sentinel while the Index is unallocated.
	chain []I
	// bucketCount and chainSize are the logical array sizes. While the
	// Index is unallocated they record the sizes to use for the deferred
	// allocation and may differ from len(buckets)/len(chain).
	bucketCount int
	chainSize   int
	// hashMask is the cached bucketCount-1, held as uintptr rather than K so
	// that the mask stays intact when K is narrower than the bucket count.
	// Buckets always number a power of two, so key & hashMask replaces the
	// slower key % bucketCount.
	hashMask uintptr
	// lookupMask is zero while the Index is unallocated and all-ones once
	// allocated. ANDing it into the slot computations of First and Next
	// redirects every probe of an unallocated Index to slot 0 of the
	// sentinel slices, avoiding an allocation-state branch on the lookup
	// path.
	lookupMask uintptr
	// granularity is the rounding unit for chain growth. Always >= 1.
	granularity int
	// allocator provides the backing arrays.
	allocator Allocator[I]
}

// New constructs an empty Index. No memory is allocated until the first
// insertion; the configured sizes (WithInitialSize, or 1024/1024) are
// recorded for that deferred allocation. The bucket count must be a power of
// two.
func New[I IndexType, K KeyType](options ...option[I, K]) *Index[I, K] {
	h := &Index[I, K]{
		bucketCount: defaultInitialSize,
		chainSize:   defaultInitialSize,
		granularity: defaultGranularity,
		allocator:   defaultAllocator[I]{},
	}

	for _, op := range options {
		op.apply(h)
	}

	if !isPowerOfTwo(h.bucketCount) {
		panic(fmt.Sprintf("hashindex: bucket count %d is not a power of two", h.bucketCount))
	}
	if h.granularity < 1 {
		panic(fmt.Sprintf("hashindex: granularity %d < 1", h.granularity))
	}

	h.hashMask = uintptr(h.bucketCount - 1)
	h.buckets = []I{NullIndex[I]()}
	h.chain = []I{NullIndex[I]()}
	h.checkInvariants()
	return h
}

// First returns the index of the most recently inserted entry whose key maps
// to the same bucket as key, or the null sentinel if the bucket is empty.
// Safe to call on an unallocated Index.
//
// The bucket array length is always a power of two, so key & hashMask
// replaces the modulo. The final AND with lookupMask is the unallocated-state
// switch: zero collapses the slot to the one-element sentinel (yielding the
// null index), all-ones leaves the computed slot untouched.
func (h *Index[I, K]) First(key K) I {
	return h.buckets[(uintptr(key)&h.hashMask)&h.lookupMask]
}

// Next returns the index of the next entry in the same bucket's list as
// index, or the null sentinel at the end of the list. The index must be
// within the current chain size; the chain is grown on insertion to cover
// the largest inserted index, so this is mostly an internal consistency
// requirement.
func (h *Index[I, K]) Next(index I) I {
	if invariants {
		if int(index) < 0 || int(index) >= h.chainSize {
			panic(fmt.Sprintf("hashindex: index %d out of range [0,%d)", index, h.chainSize))
		}
	}
	return h.chain[uintptr(index)&h.lookupMask]
}

// Find walks the bucket list for key and returns the first index whose
// element in collection equals needle, or the null sentinel if none does.
// The average cost depends on the load factor; the worst case walks the
// whole bucket list.
//
// Find is a package function rather than a method because Go methods cannot
// introduce the element type parameter.
func Find[I IndexType, K KeyType, V comparable](
	h *Index[I, K], key K, needle V, collection []V,
) I {
	return FindFunc(h, key, needle, collection, func(needle, elem V) bool {
		return needle == elem
	})
}

// FindFunc is Find with an explicit equality predicate. The needle type is
// independent of the element type, so a key value (say a name string) can be
// matched directly against a field of the stored elements. The Index never
// touches collection's elements itself; only eq does.
func FindFunc[I IndexType, K KeyType, N, V any](
	h *Index[I, K], key K, needle N, collection []V, eq func(needle N, elem V) bool,
) I {
	for i := h.First(key); i != NullIndex[I](); i = h.Next(i) {
		if eq(needle, collection[i]) {
			return i
		}
	}
	return NullIndex[I]()
}

// Insert adds an entry mapping key to index. The entry becomes the head of
// its bucket's list, so among entries sharing a bucket the most recently
// inserted is found first. No uniqueness check is performed: inserting the
// same index twice, or different indexes under colliding keys, leaves all
// entries reachable.
//
// The first insertion performs the deferred allocation; an index at or
// beyond the current chain size grows the chain.
func (h *Index[I, K]) Insert(key K, index I) {
	if h.lookupMask == 0 {
		chainSize := h.chainSize
		if int(index) >= chainSize {
			chainSize = int(index) + 1
		}
		h.allocate(h.bucketCount, chainSize)
	} else if int(index) >= h.chainSize {
		h.ResizeIndexChain(int(index) + 1)
	}

	k := uintptr(key) & h.hashMask
	h.chain[index] = h.buckets[k]
	h.buckets[k] = index

	if debug {
		fmt.Printf("insert(%v,%v): bucket=%d head=%v\n", key, index, k, h.buckets[k])
	}
	h.checkInvariants()
}

// Erase removes the entry mapping key to index. Callers must pass the same
// (key, index) pair used at insertion. Erasing on an unallocated Index is a
// no-op. If the pair matches no live entry in key's bucket the list is left
// unmodified, but the chain slot for index is still reset to the null
// sentinel.
func (h *Index[I, K]) Erase(key K, index I) {
	if invariants {
		if int(index) < 0 || int(index) >= h.chainSize {
			panic(fmt.Sprintf("hashindex: index %d out of range [0,%d)", index, h.chainSize))
		}
	}
	if h.lookupMask == 0 {
		return
	}

	null := NullIndex[I]()
	k := uintptr(key) & h.hashMask

	if h.buckets[k] == index {
		h.buckets[k] = h.chain[index]
	} else {
		for i := h.buckets[k]; i != null; i = h.chain[i] {
			if h.chain[i] == index {
				h.chain[i] = h.chain[index]
				break
			}
		}
	}

	h.chain[index] = null
	h.checkInvariants()
}

// InsertAtIndex makes room at index and then inserts (key, index). It is the
// companion of inserting an element into the middle of the external array:
// every stored index at or beyond index is incremented by one and the chain
// is shifted right by one slot, so the Index stays aligned with the shifted
// external array. A no-op on an unallocated Index.
//
// Cost is O(bucketCount + chainSize) regardless of list lengths, since every
// stored index must be examined for renumbering.
func (h *Index[I, K]) InsertAtIndex(key K, index I) {
	if h.lookupMask == 0 {
		return
	}

	if debug {
		fmt.Printf("insertAtIndex(%v,%v)\n", key, index)
	}

	// Renumber every live index >= index, tracking the largest value the
	// renumbering produced. Sentinel slots are skipped: they are not stored
	// indexes.
	null := NullIndex[I]()
	max := index

	for i := 0; i < h.bucketCount; i++ {
		if h.buckets[i] != null && h.buckets[i] >= index {
			h.buckets[i]++
			if h.buckets[i] > max {
				max = h.buckets[i]
			}
		}
	}
	for i := 0; i < h.chainSize; i++ {
		if h.chain[i] != null && h.chain[i] >= index {
			h.chain[i]++
			if h.chain[i] > max {
				max = h.chain[i]
			}
		}
	}

	if int(max) >= h.chainSize {
		h.growChain(int(max) + 1)
	}

	// Shift the chain right to open a genuinely free slot at index, mirroring
	// the element shift in the external array.
	for i := max; i > index; i-- {
		h.chain[i] = h.chain[i-1]
	}
	h.chain[index] = null

	h.Insert(key, index)
}

// EraseAndRemoveIndex erases (key, index) and then renumbers the Index as if
// the external array had the element at index physically removed: every
// stored index at or beyond index is decremented by one and the chain is
// shifted left by one slot. It is the exact inverse of InsertAtIndex for the
// same index on an otherwise-unmodified Index. A no-op on an unallocated
// Index.
func (h *Index[I, K]) EraseAndRemoveIndex(key K, index I) {
	if invariants {
		if int(index) < 0 || int(index) >= h.chainSize {
			panic(fmt.Sprintf("hashindex: index %d out of range [0,%d)", index, h.chainSize))
		}
	}
	if h.lookupMask == 0 {
		return
	}

	if debug {
		fmt.Printf("eraseAndRemoveIndex(%v,%v)\n", key, index)
	}

	h.Erase(key, index)

	// Renumber, tracking the largest pre-decrement value so the shift below
	// covers every slot the renumbering touched.
	null := NullIndex[I]()
	max := index

	for i := 0; i < h.bucketCount; i++ {
		if h.buckets[i] != null && h.buckets[i] >= index {
			if h.buckets[i] > max {
				max = h.buckets[i]
			}
			h.buckets[i]--
		}
	}
	for i := 0; i < h.chainSize; i++ {
		if h.chain[i] != null && h.chain[i] >= index {
			if h.chain[i] > max {
				max = h.chain[i]
			}
			h.chain[i]--
		}
	}

	for i := index; i < max; i++ {
		h.chain[i] = h.chain[i+1]
	}
	h.chain[max] = null
	h.checkInvariants()
}

// Clear resets every bucket to the null sentinel. The chain is left
// untouched: stale chain entries are unreachable once the buckets are
// cleared and are overwritten by future insertions, which keeps Clear
// O(bucketCount) rather than O(chainSize).
func (h *Index[I, K]) Clear() {
	if h.lookupMask == 0 {
		return
	}
	fillNull(h.buckets)
	h.checkInvariants()
}

// ClearAndResize releases the current storage and records new sizes for the
// deferred allocation performed by the next insertion. newBucketCount must
// be a power of two.
func (h *Index[I, K]) ClearAndResize(newBucketCount, newChainSize int) {
	if !isPowerOfTwo(newBucketCount) {
		panic(fmt.Sprintf("hashindex: bucket count %d is not a power of two", newBucketCount))
	}

	h.ClearAndFree()
	h.bucketCount = newBucketCount
	h.chainSize = newChainSize
	h.hashMask = uintptr(newBucketCount - 1)
	h.checkInvariants()
}

// ClearAndFree releases both arrays back to the allocator and returns the
// Index to the unallocated state. The configured sizes are retained for the
// next allocation.
func (h *Index[I, K]) ClearAndFree() {
	if h.lookupMask != 0 {
		h.allocator.Free(h.buckets)
		h.allocator.Free(h.chain)
	}
	h.buckets = []I{NullIndex[I]()}
	h.chain = []I{NullIndex[I]()}
	h.lookupMask = 0
	h.checkInvariants()
}

// SetGranularity changes the rounding unit used by future chain growth.
// Must be >= 1; powers of two work best but are not required.
func (h *Index[I, K]) SetGranularity(newGranularity int) {
	if newGranularity < 1 {
		panic(fmt.Sprintf("hashindex: granularity %d < 1", newGranularity))
	}
	h.granularity = newGranularity
}

// ResizeIndexChain grows the index chain to at least newChainSize slots,
// rounded up to a multiple of the granularity. Shrinking is a no-op. On an
// unallocated Index the rounded size is recorded and allocation deferred to
// the next insertion. Growth copies into a fresh array and swaps it in, so
// the Index is never left in a partially-grown state.
func (h *Index[I, K]) ResizeIndexChain(newChainSize int) {
	h.growChain(newChainSize)
	h.checkInvariants()
}

// growChain is ResizeIndexChain without the invariant check: InsertAtIndex
// grows the chain mid-renumber, when the lists are temporarily inconsistent.
func (h *Index[I, K]) growChain(newChainSize int) {
	if newChainSize <= h.chainSize {
		return
	}

	if mod := newChainSize % h.granularity; mod != 0 {
		newChainSize += h.granularity - mod
	}

	if h.lookupMask == 0 {
		// Not allocated yet; defer.
		h.chainSize = newChainSize
		return
	}

	if debug {
		fmt.Printf("growChain: %d -> %d\n", h.chainSize, newChainSize)
	}

	newChain := h.allocator.Alloc(newChainSize)
	copy(newChain, h.chain)
	fillNull(newChain[h.chainSize:])

	h.allocator.Free(h.chain)
	h.chain = newChain
	h.chainSize = newChainSize
}

// DistributionPercentage measures the spread of entries over the buckets as
// a number in [0,100], 100 being a perfectly even spread. Returns 100 for an
// unallocated Index or one holding at most a single entry. This is a
// load-balance heuristic for picking bucket counts and hash functions, not a
// correctness-affecting value. It allocates a temporary counts slice.
func (h *Index[I, K]) DistributionPercentage() int {
	if h.lookupMask == 0 {
		return 100
	}

	null := NullIndex[I]()
	counts := make([]int, h.bucketCount)
	totalItems := 0

	for i := 0; i < h.bucketCount; i++ {
		for index := h.buckets[i]; index != null; index = h.chain[index] {
			counts[i]++
		}
		totalItems += counts[i]
	}

	if totalItems <= 1 {
		return 100
	}

	// Sum, over the buckets, how far each count strays from the average
	// beyond a tolerance of one.
	deviation := 0
	average := totalItems / h.bucketCount
	for _, c := range counts {
		e := c - average
		if e < 0 {
			e = -e
		}
		if e > 1 {
			deviation += e - 1
		}
	}

	// The deviation sum can exceed totalItems when nearly everything piles
	// into one bucket; floor the result so the scale stays [0,100].
	if p := 100 - deviation*100/totalItems; p > 0 {
		return p
	}
	return 0
}

// AllocatedBytes returns the heap memory held by the two backing arrays.
// Zero for an unallocated Index.
func (h *Index[I, K]) AllocatedBytes() int {
	if h.lookupMask == 0 {
		return 0
	}
	var z I
	return (h.bucketCount + h.chainSize) * int(unsafe.Sizeof(z))
}

// BucketCount returns the bucket array size: the allocated size, or the size
// recorded for the deferred allocation if the Index is unallocated.
func (h *Index[I, K]) BucketCount() int {
	return h.bucketCount
}

// ChainSize returns the index chain size, with the same deferred-allocation
// caveat as BucketCount.
func (h *Index[I, K]) ChainSize() int {
	return h.chainSize
}

// Granularity returns the current chain growth rounding unit.
func (h *Index[I, K]) Granularity() int {
	return h.granularity
}

// IsAllocated reports whether the Index holds heap-allocated arrays.
func (h *Index[I, K]) IsAllocated() bool {
	return h.lookupMask != 0
}

// Equal reports whether h and other are deeply equal: same sizes, masks, and
// granularity, and, when allocated, identical bucket and chain contents. An
// unallocated Index is equal only to another unallocated Index with matching
// configuration.
func (h *Index[I, K]) Equal(other *Index[I, K]) bool {
	if h == other {
		return true
	}
	if h.bucketCount != other.bucketCount ||
		h.chainSize != other.chainSize ||
		h.hashMask != other.hashMask ||
		h.lookupMask != other.lookupMask ||
		h.granularity != other.granularity {
		return false
	}
	if h.lookupMask == 0 {
		return true
	}
	return slices.Equal(h.buckets, other.buckets) &&
		slices.Equal(h.chain, other.chain)
}

// Clone returns a deep copy of h, allocating independent storage through h's
// allocator. Mutating the clone never affects the original.
func (h *Index[I, K]) Clone() *Index[I, K] {
	c := &Index[I, K]{
		bucketCount: h.bucketCount,
		chainSize:   h.chainSize,
		hashMask:    h.hashMask,
		lookupMask:  h.lookupMask,
		granularity: h.granularity,
		allocator:   h.allocator,
	}
	if h.lookupMask == 0 {
		c.buckets = []I{NullIndex[I]()}
		c.chain = []I{NullIndex[I]()}
	} else {
		c.buckets = h.allocator.Alloc(h.bucketCount)
		c.chain = h.allocator.Alloc(h.chainSize)
		copy(c.buckets, h.buckets)
		copy(c.chain, h.chain)
	}
	c.checkInvariants()
	return c
}

// Swap exchanges the entire state of h and other. It never allocates.
func (h *Index[I, K]) Swap(other *Index[I, K]) {
	*h, *other = *other, *h
}

// Move transfers h's state into a newly constructed Index and returns it,
// leaving h unallocated with the default configuration, as if freshly
// constructed by New.
func (h *Index[I, K]) Move() *Index[I, K] {
	m := New[I, K]()
	m.Swap(h)
	return m
}

// allocate installs fresh null-filled arrays of the given sizes, releasing
// any current allocation first.
func (h *Index[I, K]) allocate(newBucketCount, newChainSize int) {
	if !isPowerOfTwo(newBucketCount) {
		panic(fmt.Sprintf("hashindex: bucket count %d is not a power of two", newBucketCount))
	}

	if h.lookupMask != 0 {
		h.ClearAndFree()
	}

	if debug {
		fmt.Printf("allocate: buckets=%d chain=%d\n", newBucketCount, newChainSize)
	}

	h.buckets = h.allocator.Alloc(newBucketCount)
	h.chain = h.allocator.Alloc(newChainSize)
	h.bucketCount = newBucketCount
	h.chainSize = newChainSize
	h.hashMask = uintptr(newBucketCount - 1)
	h.lookupMask = ^uintptr(0)

	fillNull(h.buckets)
	fillNull(h.chain)
	h.checkInvariants()
}

func (h *Index[I, K]) checkInvariants() {
	if invariants {
		if !isPowerOfTwo(h.bucketCount) {
			panic(fmt.Sprintf("invariant failed: bucket count %d is not a power of two\n%s",
				h.bucketCount, h.debugString()))
		}
		if h.hashMask != uintptr(h.bucketCount-1) {
			panic(fmt.Sprintf("invariant failed: hash mask %v != bucket count %d - 1\n%s",
				h.hashMask, h.bucketCount, h.debugString()))
		}

		null := NullIndex[I]()
		if h.lookupMask == 0 {
			if len(h.buckets) != 1 || h.buckets[0] != null {
				panic(fmt.Sprintf("invariant failed: unallocated bucket sentinel %v", h.buckets))
			}
			if len(h.chain) != 1 || h.chain[0] != null {
				panic(fmt.Sprintf("invariant failed: unallocated chain sentinel %v", h.chain))
			}
			return
		}

		if len(h.buckets) != h.bucketCount || len(h.chain) != h.chainSize {
			panic(fmt.Sprintf("invariant failed: arrays %d/%d do not match sizes %d/%d",
				len(h.buckets), len(h.chain), h.bucketCount, h.chainSize))
		}

		// Every reachable list must be null-terminated within chainSize
		// steps (no cycles) and every link must be a valid slot.
		for i := 0; i < h.bucketCount; i++ {
			steps := 0
			for j := h.buckets[i]; j != null; j = h.chain[j] {
				if int(j) < 0 || int(j) >= h.chainSize {
					panic(fmt.Sprintf("invariant failed: bucket %d links to %d, chain size %d\n%s",
						i, int(j), h.chainSize, h.debugString()))
				}
				if steps++; steps > h.chainSize {
					panic(fmt.Sprintf("invariant failed: cycle in bucket %d\n%s", i, h.debugString()))
				}
			}
		}
	}
}

func (h *Index[I, K]) debugString() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "buckets=%d  chain=%d  granularity=%d  allocated=%t\n",
		h.bucketCount, h.chainSize, h.granularity, h.lookupMask != 0)
	if h.lookupMask == 0 {
		return buf.String()
	}
	null := NullIndex[I]()
	for i := 0; i < h.bucketCount; i++ {
		if h.buckets[i] == null {
			continue
		}
		fmt.Fprintf(&buf, "  %4d:", i)
		steps := 0
		for j := h.buckets[i]; j != null; j = h.chain[j] {
			fmt.Fprintf(&buf, " %d", int(j))
			if int(j) >= h.chainSize {
				buf.WriteString(" <out of range>")
				break
			}
			if steps++; steps > h.chainSize {
				buf.WriteString(" <cycle>")
				break
			}
		}
		buf.WriteString("\n")
	}
	return buf.String()
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

func fillNull[I IndexType](s []I) {
	for i := range s {
		s[i] = ^I(0)
	}
}
