package scanning

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// fieldScanPrompt is the shared prompt used by the LLM fallback providers
const fieldScanPrompt = `You are analyzing a Brazilian payment receipt (comprovante de pagamento, comprovante de transação, or a bank transfer screenshot). Carefully read all text in the image and extract the following information:

1. **Beneficiary**: The name of the person or company that received the payment. Look for labels such as "Beneficiário", "Favorecido", "Nome", "Para", or "Destino". Extract only the person or company name, without document numbers (CPF/CNPJ) or bank details.

2. **Date**: The payment date or the boleto due date ("Vencimento"). Convert it to ISO 8601 format (YYYY-MM-DD). Brazilian receipts usually write dates as DD/MM/YYYY or "15 de março de 2024".

Return ONLY valid JSON in this exact format:
{
  "beneficiary": "Name Here",
  "date": "YYYY-MM-DD"
}

Important:
- The date must be in YYYY-MM-DD format
- If you cannot find a field, use an empty string for that field
- Do not include any text before or after the JSON
- Do not use markdown code blocks`

// fallbackDateFormats are tried when the model ignores the ISO instruction.
// DD/MM comes before MM/DD: these are Brazilian receipts.
var fallbackDateFormats = []string{
	"2006/01/02",
	"02/01/2006",
	"02-01-2006",
	"02.01.2006",
}

// parseFieldsJSON parses the JSON response from the LLM fallback
func parseFieldsJSON(text string) (*ReceiptFields, error) {
	text = strings.TrimSpace(text)

	// Remove markdown code blocks if present
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSpace(text)

	// Find the JSON object boundaries - look for first { and last }
	startIdx := strings.Index(text, "{")
	if startIdx == -1 {
		return nil, fmt.Errorf("no JSON object found in response")
	}

	endIdx := strings.LastIndex(text, "}")
	if endIdx == -1 || endIdx < startIdx {
		return nil, fmt.Errorf("invalid JSON object in response")
	}

	text = text[startIdx : endIdx+1]

	var fields ReceiptFields
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		return nil, fmt.Errorf("unmarshaling json: %w", err)
	}

	fields.Beneficiary = strings.TrimSpace(fields.Beneficiary)
	fields.Date = strings.TrimSpace(fields.Date)

	// Normalize the date to ISO. A date that parses under no known format is
	// dropped rather than guessed: an unfiled document beats a misfiled one.
	if fields.Date != "" {
		if _, err := time.Parse("2006-01-02", fields.Date); err != nil {
			parsed := false
			for _, format := range fallbackDateFormats {
				if d, e := time.Parse(format, fields.Date); e == nil {
					fields.Date = d.Format("2006-01-02")
					parsed = true
					break
				}
			}
			if !parsed {
				fields.Date = ""
			}
		}
	}

	return &fields, nil
}
