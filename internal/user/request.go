package user

type UpdateProfileRequest struct {
	Fullname   string `json:"fullname"`
	DOB        string `json:"dob"`
	BloodGroup string `json:"blood_group"`
	Address    string `json:"address"`
}
