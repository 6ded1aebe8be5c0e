package parsing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("transactionExtractor", func() {
	var (
		lines []string
		rec   Record
		err   error
	)

	JustBeforeEach(func() {
		rec, err = transactionExtractor{}.Extract(lines)
	})

	When("the receipt names a beneficiário", func() {
		BeforeEach(func() {
			lines = []string{
				"Comprovante de transação",
				"Pix realizado",
				"Beneficiário",
				"João da Silva DOC 12345678900",
				"Vencimento do boleto",
				"21/07/2024 às 10:00",
			}
		})

		It("should not return an error", func() {
			Expect(err).NotTo(HaveOccurred())
		})

		It("should cut the name before the document suffix", func() {
			Expect(rec.Beneficiary).To(Equal("João-da-Silva"))
		})

		It("should slash-convert the due date", func() {
			Expect(rec.DueDate).To(Equal("21_07_2024"))
		})
	})

	When("the receipt uses the 'você pagou a' phrasing", func() {
		BeforeEach(func() {
			lines = []string{
				"Comprovante de transação",
				"Você pagou a",
				"Maria Souza",
				"Vencimento do boleto",
				"01/02/2024",
			}
		})

		It("should take the next line as the payee", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.Beneficiary).To(Equal("Maria-Souza"))
		})
	})

	When("an anchor sits on the last line", func() {
		BeforeEach(func() {
			lines = []string{
				"Comprovante de transação",
				"Beneficiário",
			}
		})

		It("returns the out of range error", func() {
			Expect(err).To(MatchError(ErrLineOutOfRange))
		})
	})
})

var _ = Describe("paymentExtractor", func() {
	var (
		lines []string
		rec   Record
		err   error
	)

	JustBeforeEach(func() {
		rec, err = paymentExtractor{}.Extract(lines)
	})

	When("the receipt follows the standard layout", func() {
		BeforeEach(func() {
			lines = []string{
				"Comprovante de pagamento",
				"15 de março de 2024",
				"Valor R$ 120,00",
				"Para",
				"Maria Souza",
			}
		})

		It("should not return an error", func() {
			Expect(err).NotTo(HaveOccurred())
		})

		It("should extract the payment date", func() {
			Expect(rec.PaymentDate).To(Equal("15_03_2024"))
		})

		It("should extract the payee", func() {
			Expect(rec.Beneficiary).To(Equal("Maria-Souza"))
		})
	})

	When("the 'para' anchor is part of a longer line", func() {
		BeforeEach(func() {
			lines = []string{
				"Comprovante de pagamento",
				"3 de maio de 2023",
				"Parabéns pelo pagamento",
				"Para",
				"José Antônio",
			}
		})

		It("should only trigger on the exact line", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.Beneficiary).To(Equal("José-Antônio"))
		})

		It("should zero-pad single-digit days", func() {
			Expect(rec.PaymentDate).To(Equal("03_05_2023"))
		})
	})

	When("the header date names an unknown month", func() {
		BeforeEach(func() {
			lines = []string{
				"Comprovante de pagamento",
				"15 de mars de 2024",
				"Para",
				"Maria Souza",
			}
		})

		It("returns the unknown month error", func() {
			Expect(err).To(MatchError(ErrUnknownMonth))
		})
	})
})

var _ = Describe("imageExtractor", func() {
	var (
		lines []string
		rec   Record
		err   error
	)

	JustBeforeEach(func() {
		rec, err = imageExtractor{}.Extract(lines)
	})

	When("the screenshot labels the payee with 'Nome'", func() {
		BeforeEach(func() {
			lines = []string{
				"Pix enviado",
				"28 MAR 2024 - 14:03:21",
				"Destino",
				"Instituição Banco XYZ",
				"Nome João da Silva",
			}
		})

		It("should not return an error", func() {
			Expect(err).NotTo(HaveOccurred())
		})

		It("should extract the date from the timestamp", func() {
			Expect(rec.PaymentDate).To(Equal("28_03_2024"))
		})

		It("should take the text after the marker as the payee", func() {
			Expect(rec.Beneficiary).To(Equal("João-da-Silva"))
		})
	})

	When("the screenshot labels the payee with 'Favorecido'", func() {
		BeforeEach(func() {
			lines = []string{
				"Transferência concluída",
				"05 DEZ 2023 - 09:12:45",
				"Destino",
				"Agência 0001 Conta 12345-6",
				"Favorecido Maria Souza",
			}
		})

		It("should take the text after the marker as the payee", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.Beneficiary).To(Equal("ido-Maria-Souza"))
		})
	})

	When("the destino anchor needs two lines that are not there", func() {
		BeforeEach(func() {
			lines = []string{
				"28 MAR 2024 - 14:03:21",
				"Destino",
				"Banco XYZ",
			}
		})

		It("returns the out of range error", func() {
			Expect(err).To(MatchError(ErrLineOutOfRange))
		})
	})
})
