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

package hashindex

// option provides an interface to do work on an Index while it is being
// created.
type option[I IndexType, K KeyType] interface {
	apply(h *Index[I, K])
}

type initialSizeOption[I IndexType, K KeyType] struct {
	bucketCount int
	chainSize   int
}

func (op initialSizeOption[I, K]) apply(h *Index[I, K]) {
	h.bucketCount = op.bucketCount
	h.chainSize = op.chainSize
}

// WithInitialSize is an option to specify the bucket count and index chain
// size recorded at construction and used by the deferred first allocation.
// bucketCount must be a power of two. The chain still grows on demand if an
// index beyond chainSize is inserted.
func WithInitialSize[I IndexType, K KeyType](bucketCount, chainSize int) option[I, K] {
	return initialSizeOption[I, K]{bucketCount, chainSize}
}

type granularityOption[I IndexType, K KeyType] struct {
	granularity int
}

func (op granularityOption[I, K]) apply(h *Index[I, K]) {
	h.granularity = op.granularity
}

// WithGranularity is an option to specify the initial chain growth rounding
// unit, equivalent to calling SetGranularity on a fresh Index. Must be >= 1.
func WithGranularity[I IndexType, K KeyType](granularity int) option[I, K] {
	return granularityOption[I, K]{granularity}
}

// Allocator specifies an interface for allocating and releasing the memory
// used by an Index's bucket and chain arrays. The default allocator utilizes
// Go's builtin make() and allows the GC to reclaim memory.
//
// If the allocator is manually managing memory, ClearAndFree must be called
// in order to ensure Free is called for the live arrays.
type Allocator[I IndexType] interface {
	// Alloc should return a slice equivalent to make([]I, n).
	Alloc(n int) []I

	// Free can optionally release the memory associated with the supplied
	// slice that is guaranteed to have been allocated by Alloc.
	Free(v []I)
}

type defaultAllocator[I IndexType] struct{}

func (defaultAllocator[I]) Alloc(n int) []I {
	return make([]I, n)
}

func (defaultAllocator[I]) Free(v []I) {
}

type allocatorOption[I IndexType, K KeyType] struct {
	allocator Allocator[I]
}

func (op allocatorOption[I, K]) apply(h *Index[I, K]) {
	h.allocator = op.allocator
}

// WithAllocator is an option for specifying the Allocator to use for an
// Index[I, K].
func WithAllocator[I IndexType, K KeyType](allocator Allocator[I]) option[I, K] {
	return allocatorOption[I, K]{allocator}
}
