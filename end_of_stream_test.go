package rings_test

import (
	"runtime"

	"code.cloudfoundry.org/go-rings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("EndOfStream", func() {
	It("never equals a payload token", func() {
		Expect(rings.IsEndOfStream(token(-1))).To(BeFalse())
		Expect(rings.IsEndOfStream(nil)).To(BeFalse())
		Expect(rings.IsEndOfStream(rings.EndOfStream)).To(BeTrue())
	})

	It("tells readers to stop", func() {
		q, err := rings.NewOneToMany(8)
		Expect(err).ToNot(HaveOccurred())

		const readers = 3
		counts := make(chan int, readers)
		for r := 0; r < readers; r++ {
			go func() {
				defer GinkgoRecover()
				var count int
				for {
					data, ok := q.TryNext()
					if !ok {
						runtime.Gosched()
						continue
					}
					if rings.IsEndOfStream(data) {
						counts <- count
						return
					}
					count++
				}
			}()
		}

		for i := 0; i < 1000; i++ {
			for !q.TryPush(token(i)) {
				runtime.Gosched()
			}
		}
		for r := 0; r < readers; r++ {
			for !q.TryPush(rings.EndOfStream) {
				runtime.Gosched()
			}
		}

		var total int
		for r := 0; r < readers; r++ {
			var c int
			Eventually(counts).Should(Receive(&c))
			total += c
		}
		Expect(total).To(Equal(1000))
	})
})
