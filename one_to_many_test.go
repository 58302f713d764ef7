package rings_test

import (
	"runtime"
	"sort"
	"sync"

	"code.cloudfoundry.org/go-rings"
	"code.cloudfoundry.org/go-rings/ring"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("OneToMany", func() {
	var (
		q *rings.OneToMany
	)

	BeforeEach(func() {
		var err error
		q, err = rings.NewOneToMany(8)
		Expect(err).ToNot(HaveOccurred())
	})

	It("rejects a size of zero", func() {
		_, err := rings.NewOneToMany(0, ring.WithModuloAddressing())
		Expect(err).To(MatchError(ring.ErrAllocation))
	})

	Describe("TryNext()", func() {
		It("returns false when empty", func() {
			data, ok := q.TryNext()
			Expect(ok).To(BeFalse())
			Expect(data == nil).To(BeTrue())
		})

		Context("multiple tokens", func() {
			BeforeEach(func() {
				for i := 1; i <= 3; i++ {
					q.TryPush(token(i))
				}
			})

			It("returns tokens in order", func() {
				for i := 1; i <= 3; i++ {
					data, ok := q.TryNext()
					Expect(ok).To(BeTrue())
					Expect(value(data)).To(Equal(i))
				}
			})

			Context("reads exceed writes", func() {
				BeforeEach(func() {
					for i := 0; i < 3; i++ {
						q.TryNext()
					}
				})

				It("returns false", func() {
					_, ok := q.TryNext()
					Expect(ok).To(BeFalse())
				})
			})
		})
	})

	Describe("TryNextBatch()", func() {
		BeforeEach(func() {
			for i := 0; i < 8; i++ {
				Expect(q.TryPush(token(i))).To(BeTrue())
			}
		})

		It("returns at most len(dst) tokens", func() {
			dst := make([]rings.GenericDataType, 3)
			Expect(q.TryNextBatch(dst)).To(Equal(3))
			Expect(values(dst)).To(Equal([]int{0, 1, 2}))
		})

		It("never overlaps consecutive batches", func() {
			first := make([]rings.GenericDataType, 5)
			second := make([]rings.GenericDataType, 5)

			Expect(q.TryNextBatch(first)).To(Equal(5))
			Expect(q.TryNextBatch(second)).To(Equal(3))

			Expect(values(first)).To(Equal([]int{0, 1, 2, 3, 4}))
			Expect(values(second[:3])).To(Equal([]int{5, 6, 7}))
		})

		It("returns 0 once empty", func() {
			q.Drain(nil)
			Expect(q.TryNextBatch(make([]rings.GenericDataType, 4))).To(BeZero())
		})
	})

	Context("many readers", func() {
		const (
			n       = 50000
			readers = 4
		)

		It("hands every token to exactly one reader", func() {
			var (
				wg   sync.WaitGroup
				mu   sync.Mutex
				got  []int
				done = make(chan struct{})
			)

			for r := 0; r < readers; r++ {
				wg.Add(1)
				go func(batch int) {
					defer GinkgoRecover()
					defer wg.Done()

					var local []int
					dst := make([]rings.GenericDataType, batch)
					for {
						c := q.TryNextBatch(dst)
						if c == 0 {
							select {
							case <-done:
								if q.Len() == 0 {
									mu.Lock()
									got = append(got, local...)
									mu.Unlock()
									return
								}
							default:
							}
							runtime.Gosched()
							continue
						}

						vs := values(dst[:c])
						Expect(sort.IntsAreSorted(vs)).To(BeTrue())
						if len(local) > 0 {
							Expect(vs[0]).To(BeNumerically(">", local[len(local)-1]))
						}
						local = append(local, vs...)
					}
				}(r + 1)
			}

			for i := 0; i < n; i++ {
				for !q.TryPush(token(i)) {
					runtime.Gosched()
				}
			}
			close(done)
			wg.Wait()

			want := make([]int, n)
			for i := range want {
				want[i] = i
			}
			sort.Ints(got)
			Expect(got).To(Equal(want))
			Expect(q.Stats()).To(Equal(ring.Stats{Pushed: n, Popped: n}))
		})
	})
})
