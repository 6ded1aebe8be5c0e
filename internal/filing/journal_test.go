package filing

import (
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Journal", func() {
	var journal *Journal

	BeforeEach(func() {
		var err error
		journal, err = NewJournal(filepath.Join(GinkgoT().TempDir(), "journal.db"))
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		if journal != nil {
			journal.Close()
		}
	})

	Describe("Record", func() {
		var (
			entry *Entry
			err   error
		)

		BeforeEach(func() {
			entry = &Entry{
				Source:      "comprovante.pdf",
				Status:      "parsed",
				Dialect:     "payment",
				Beneficiary: "Maria-Souza",
				Date:        "15_03_2024",
				ArchivedTo:  "/arquivo/2024/mar/Maria-Souza_15_03_2024.pdf",
				ProcessedAt: time.Date(2024, 3, 16, 9, 0, 0, 0, time.UTC),
			}
		})

		JustBeforeEach(func() {
			err = journal.Record(entry)
		})

		It("should not return an error", func() {
			Expect(err).NotTo(HaveOccurred())
		})

		It("should make the entry retrievable by source", func() {
			saved, getErr := journal.Get("comprovante.pdf")
			Expect(getErr).NotTo(HaveOccurred())
			Expect(saved.Status).To(Equal("parsed"))
			Expect(saved.Beneficiary).To(Equal("Maria-Souza"))
		})

		It("should overwrite on reprocessing the same source", func() {
			entry.Status = "failed"
			Expect(journal.Record(entry)).To(Succeed())
			saved, getErr := journal.Get("comprovante.pdf")
			Expect(getErr).NotTo(HaveOccurred())
			Expect(saved.Status).To(Equal("failed"))
		})
	})

	Describe("Get", func() {
		When("no entry exists", func() {
			It("returns the error", func() {
				_, err := journal.Get("desconhecido.pdf")
				Expect(err).To(HaveOccurred())
			})
		})
	})

	Describe("List", func() {
		When("the journal is empty", func() {
			It("should return an empty slice", func() {
				entries, err := journal.List()
				Expect(err).NotTo(HaveOccurred())
				Expect(entries).To(BeEmpty())
			})
		})

		When("entries exist", func() {
			BeforeEach(func() {
				Expect(journal.Record(&Entry{Source: "a.pdf", Status: "parsed"})).To(Succeed())
				Expect(journal.Record(&Entry{Source: "b.jpeg", Status: "unrecognized"})).To(Succeed())
			})

			It("should return all of them", func() {
				entries, err := journal.List()
				Expect(err).NotTo(HaveOccurred())
				Expect(entries).To(HaveLen(2))
			})
		})
	})
})

var _ = Describe("AcquireLock", func() {
	var lockPath string

	BeforeEach(func() {
		lockPath = filepath.Join(GinkgoT().TempDir(), ".comprovante.lock")
	})

	It("creates the lock file", func() {
		release, err := AcquireLock(lockPath)
		Expect(err).NotTo(HaveOccurred())
		Expect(lockPath).To(BeAnExistingFile())
		release()
	})

	It("refuses a second acquisition", func() {
		release, err := AcquireLock(lockPath)
		Expect(err).NotTo(HaveOccurred())
		defer release()

		_, err = AcquireLock(lockPath)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("another run is in progress"))
	})

	It("allows reacquisition after release", func() {
		release, err := AcquireLock(lockPath)
		Expect(err).NotTo(HaveOccurred())
		release()

		release, err = AcquireLock(lockPath)
		Expect(err).NotTo(HaveOccurred())
		release()
	})
})
