package filing

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/brmoraes/comprovante-filer/internal/parsing"
)

var _ = Describe("Archive", func() {
	var (
		inboxDir string
		root     string
		archive  *Archive
	)

	BeforeEach(func() {
		inboxDir = GinkgoT().TempDir()
		root = filepath.Join(GinkgoT().TempDir(), "arquivo")
		var err error
		archive, err = NewArchive(root)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Store", func() {
		var (
			src  string
			rec  parsing.Record
			part parsing.Partition
			dst  string
			err  error
		)

		BeforeEach(func() {
			src = filepath.Join(inboxDir, "comprovante.pdf")
			Expect(os.WriteFile(src, []byte("pdf bytes"), 0644)).To(Succeed())
			rec = parsing.Record{Beneficiary: "Maria-Souza", PaymentDate: "15_03_2024"}
			part = parsing.Partition{Year: "2024", Month: "mar"}
		})

		JustBeforeEach(func() {
			dst, err = archive.Store(src, rec, part)
		})

		When("the record is complete", func() {
			It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			It("should file under the partition directory", func() {
				Expect(dst).To(Equal(filepath.Join(root, "2024", "mar", "Maria-Souza_15_03_2024.pdf")))
				Expect(dst).To(BeAnExistingFile())
			})

			It("should remove the source file", func() {
				Expect(src).NotTo(BeAnExistingFile())
			})

			It("should preserve the file contents", func() {
				data, readErr := os.ReadFile(dst)
				Expect(readErr).NotTo(HaveOccurred())
				Expect(string(data)).To(Equal("pdf bytes"))
			})
		})

		When("the source is a jpg", func() {
			BeforeEach(func() {
				src = filepath.Join(inboxDir, "recibo.JPG")
				Expect(os.WriteFile(src, []byte("jpeg bytes"), 0644)).To(Succeed())
			})

			It("should normalize the extension to jpeg", func() {
				Expect(err).NotTo(HaveOccurred())
				Expect(filepath.Base(dst)).To(Equal("Maria-Souza_15_03_2024.jpeg"))
			})
		})

		When("the record is incomplete", func() {
			BeforeEach(func() {
				rec = parsing.Record{Beneficiary: "Maria-Souza"}
			})

			It("returns the error and leaves the source untouched", func() {
				Expect(err).To(HaveOccurred())
				Expect(src).To(BeAnExistingFile())
			})
		})
	})
})
