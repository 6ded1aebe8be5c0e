package parsing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Classify", func() {
	var (
		lines   []string
		dialect Dialect
	)

	JustBeforeEach(func() {
		dialect = Classify(lines)
	})

	When("the first line announces a transaction receipt", func() {
		BeforeEach(func() {
			lines = []string{"Comprovante de transação", "Pix"}
		})

		It("should classify as transaction", func() {
			Expect(dialect).To(Equal(DialectTransaction))
		})
	})

	When("the first line announces a payment receipt", func() {
		BeforeEach(func() {
			lines = []string{"COMPROVANTE DE PAGAMENTO", "15 de março de 2024"}
		})

		It("should classify as payment, case-insensitively", func() {
			Expect(dialect).To(Equal(DialectPayment))
		})
	})

	When("a line carries the OCR timestamp marker", func() {
		BeforeEach(func() {
			lines = []string{"Pix enviado", "28 MAR 2024 - 14:03:21", "Destino"}
		})

		It("should classify as image", func() {
			Expect(dialect).To(Equal(DialectImage))
		})
	})

	When("no marker matches", func() {
		BeforeEach(func() {
			lines = []string{"Nota fiscal eletrônica", "Série 1"}
		})

		It("should classify as unrecognized", func() {
			Expect(dialect).To(Equal(DialectUnrecognized))
		})
	})

	When("the sequence is empty", func() {
		BeforeEach(func() {
			lines = nil
		})

		It("should classify as unrecognized", func() {
			Expect(dialect).To(Equal(DialectUnrecognized))
		})
	})

	When("the timestamp lacks the time suffix", func() {
		BeforeEach(func() {
			lines = []string{"Transferência", "28 MAR 2024"}
		})

		It("should not classify as image", func() {
			Expect(dialect).To(Equal(DialectUnrecognized))
		})
	})
})
