package types

// Hospital represents a hospital master record
type Hospital struct {
	HID     int64   `json:"HID" db:"hid"`
	Name    string  `json:"NAME" db:"name"`
	Address string  `json:"ADDR" db:"addr"`
	Email   *string `json:"EMAIL" db:"email"`
	Phone   string  `json:"PHONE" db:"phone"`
	Website *string `json:"WEBSITE" db:"website"`
}

// Doctor represents a doctor master record. The password column is never
// serialized.
type Doctor struct {
	DID            int64    `json:"DID" db:"did"`
	HID            int64    `json:"HID" db:"hid"`
	Name           string   `json:"NAME" db:"name"`
	Email          *string  `json:"EMAIL" db:"email"`
	Password       string   `json:"-" db:"pass"`
	Address        *string  `json:"ADDR" db:"addr"`
	DOB            *string  `json:"DOB" db:"dob"`
	Gender         *string  `json:"GENDER" db:"gender"`
	Specialisation string   `json:"SPECIALISATION" db:"specialisation"`
	Institute      *string  `json:"INSTITUTE" db:"institute"`
	Degree         *string  `json:"DEGREE" db:"degree"`
	Phone          string   `json:"PHONE" db:"phone"`
	Fees           *float64 `json:"FEES" db:"fees"`
}

// DoctorUpdates carries the mutable doctor profile fields for an update.
// Nil fields are written as NULL, matching the full-row update contract.
type DoctorUpdates struct {
	Name           *string  `json:"NAME"`
	DOB            *string  `json:"DOB"`
	Phone          *string  `json:"PHONE"`
	Email          *string  `json:"EMAIL"`
	Gender         *string  `json:"GENDER"`
	Address        *string  `json:"ADDR"`
	Specialisation *string  `json:"SPECIALISATION"`
	Institute      *string  `json:"INSTITUTE"`
	Degree         *string  `json:"DEGREE"`
	Fees           *float64 `json:"FEES"`
}
